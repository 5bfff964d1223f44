package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navportal/navportal/internal/config"
	"github.com/navportal/navportal/internal/daemon"
	"github.com/navportal/navportal/internal/navbar"
)

func init() { //nolint: gochecknoinits
	configDumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump as JSON, usable for "+config.EnvConfigJSON)
	configCmd.AddCommand(configDumpCmd)

	logoutURLCmd.Flags().StringVar(&origin, "origin", "", "Origin of the portal (default: Webserver.URL)")

	rootCmd.AddCommand(configCmd, logoutURLCmd)
}

var (
	dumpJSON bool
	origin   string

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}

	configDumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(&c)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	logoutURLCmd = &cobra.Command{
		Use:   "logout-url",
		Short: "Print the identity provider logout URL the navbar redirects to",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			o := origin
			if o == "" {
				o = c.Webserver.URL
			}

			target, err := navbar.LogoutURL(daemon.LogoutConfig(&c), o)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), target)

			return err
		},
	}
)
