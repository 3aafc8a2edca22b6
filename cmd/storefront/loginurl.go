package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/auth"
)

var loginURLCmd = &cobra.Command{
	Use:   "login-url",
	Short: "Print the sign-in link",
	Long: `Print the sign-in portal link built from the auth settings.

The link is informational: the shop does not require signing in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), auth.LoginURL(cfg.Auth.PortalURL, cfg.Auth.AppID, cfg.Auth.RedirectURI))
		return nil
	},
}
