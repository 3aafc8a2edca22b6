package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/auth"
	"github.com/takayama/storefront/internal/tui"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Open the storefront",
	Long: `Open the full-screen storefront.

Products open a simulated checkout; the custom server bundle opens the
server configurator. Issued tickets are printed when the shop closes and
announced on the embedded event bus when events are enabled.`,
	RunE: runShop,
}

func runShop(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	issued, err := tui.Run(tui.Options{
		Catalog:    rt.catalog,
		Generator:  rt.generator,
		Announcer:  rt.announcer,
		DiscordURL: rt.cfg.DiscordURL,
		LoginURL:   auth.LoginURL(rt.cfg.Auth.PortalURL, rt.cfg.Auth.AppID, rt.cfg.Auth.RedirectURI),
		CopyAck:    rt.cfg.CopyAckDuration(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, t := range issued {
		fmt.Fprintf(out, "Ticket %s\n", t.Reference)
	}
	if len(issued) > 0 {
		fmt.Fprintf(out, "\nOuvrez un ticket sur %s avec votre code.\n", rt.cfg.DiscordURL)
	}
	return nil
}
