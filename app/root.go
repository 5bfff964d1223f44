// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "navportal",
	Short: "navportal is a web portal with an OIDC aware navigation bar",
	Long: `navportal serves web pages whose navigation bar shows the signed in
user, toggles the sidebar and signs in and out through an OpenID Connect
identity provider such as an Amazon Cognito hosted UI.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory of the main.toml configuration file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
