package navbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogoutURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LogoutConfig
		origin  string
		want    string
		wantErr error
	}{
		{
			name:   "cognito style logout",
			cfg:    LogoutConfig{ClientID: "abc", Domain: "https://x"},
			origin: "https://y",
			want:   "https://x/logout?client_id=abc&logout_uri=https://y/logout",
		},
		{
			name:   "trailing slashes",
			cfg:    LogoutConfig{ClientID: "abc", Domain: "https://x/"},
			origin: "https://y/",
			want:   "https://x/logout?client_id=abc&logout_uri=https://y/logout",
		},
		{
			name:   "origin with port",
			cfg:    LogoutConfig{ClientID: "386tpl", Domain: "https://auth.example.com"},
			origin: "http://localhost:4200",
			want:   "https://auth.example.com/logout?client_id=386tpl&logout_uri=http://localhost:4200/logout",
		},
		{
			name:    "missing domain",
			cfg:     LogoutConfig{ClientID: "abc"},
			origin:  "https://y",
			wantErr: ErrMissingDomain,
		},
		{
			name:    "missing client id",
			cfg:     LogoutConfig{Domain: "https://x"},
			origin:  "https://y",
			wantErr: ErrMissingClientID,
		},
		{
			name:    "missing origin",
			cfg:     LogoutConfig{ClientID: "abc", Domain: "https://x"},
			wantErr: ErrMissingOrigin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LogoutURL(tt.cfg, tt.origin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
