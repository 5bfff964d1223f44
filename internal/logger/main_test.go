package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/navportal/navportal/internal/logger"
)

func TestInit(t *testing.T) {
	type testCase struct {
		name             string
		cfg              logger.Log
		shouldHaveOutPut bool
		outPutIsJSON     bool
	}

	testCases := []testCase{
		{
			name: "no logger enabled log level not set",
			cfg: logger.Log{
				LogLevel:    "",
				ServiceName: "test",
				AppName:     "test",
			},
			shouldHaveOutPut: false,
		},
		{
			name: "console enabled console writer enabled",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "test",
				Console:     logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			shouldHaveOutPut: true,
		},
		{
			name: "console enabled console writer disabled info expect json",
			cfg: logger.Log{
				LogLevel:    "info",
				ServiceName: "test",
				AppName:     "navportal",
				Console:     logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
		{
			name: "trace with caller expect json",
			cfg: logger.Log{
				LogLevel:     "trace",
				LogEnv:       "test",
				ServiceName:  "test",
				AppName:      "navportal",
				ReportCaller: true,
				Console:      logger.Console{Enabled: true},
			},
			shouldHaveOutPut: true,
			outPutIsJSON:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if tc.shouldHaveOutPut {
				assert.NotEmpty(t, out)
			} else {
				assert.Empty(t, out)
			}

			if !tc.outPutIsJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var entry map[string]any
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Errorf("expected json output but got: %s", line)
					continue
				}

				assert.Equal(t, tc.cfg.AppName, entry["app"])
			}
		})
	}
}

func TestInit_Errors(t *testing.T) {
	assert.Error(t, logger.Init(logger.Log{LogLevel: "verbose", AppName: "a", ServiceName: "s"}))
	assert.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", AppName: "a"}), logger.ErrServiceNameIsEmpty)
	assert.ErrorIs(t, logger.Init(logger.Log{LogLevel: "info", ServiceName: "s"}), logger.ErrAppNameIsEmpty)
}

func TestLevelWriter(t *testing.T) {
	var trace, info, warn, errs bytes.Buffer

	lw := &logger.LevelWriter{
		TraceWriter: &trace,
		InfoWriter:  &info,
		WarnWriter:  &warn,
		ErrorWriter: &errs,
	}

	writes := map[zerolog.Level]string{
		zerolog.TraceLevel: "t",
		zerolog.DebugLevel: "d",
		zerolog.InfoLevel:  "i",
		zerolog.WarnLevel:  "w",
		zerolog.ErrorLevel: "e",
		zerolog.FatalLevel: "f",
		zerolog.Disabled:   "x",
	}

	for level, msg := range writes {
		_, err := lw.WriteLevel(level, []byte(msg))
		assert.NoError(t, err)
	}

	assert.Equal(t, "t", trace.String())
	assert.ElementsMatch(t, []byte("di"), info.Bytes())
	assert.Equal(t, "w", warn.String())
	assert.ElementsMatch(t, []byte("ef"), errs.Bytes())
}

func alwaysErrFunc() error {
	return errors.New("a test error") //nolint:goerr113
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()
	// keep default std out
	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	err := logger.Init(cfg)
	if err != nil {
		t.Error(err)
	}

	log.Info().Msg("this info message should be seen...")
	log.Error().Err(alwaysErrFunc()).Msg("this err message should be seen...")
	log.Trace().Err(alwaysErrFunc()).Msg("this trace message should be seen...")

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	// back to normal state
	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout
	os.Stderr = stderr // restoring the real stderr

	return <-outC
}
