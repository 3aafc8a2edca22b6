package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/wizard"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Configure a custom Discord server",
	Long: `Run the server configurator on its own.

The configurator walks through the server type, bot options and additional
services, shows the total and issues a server ticket reference.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer rt.Close()

	session := order.Open(order.KindServer, rt.generator)
	ticket, err := wizard.RunBuilder(session, wizard.Options{
		Announcer:  rt.announcer,
		DiscordURL: rt.cfg.DiscordURL,
		CopyAck:    rt.cfg.CopyAckDuration(),
	})
	if errors.Is(err, wizard.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration annulée.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ticket %s (%s)\n", ticket.Reference, catalog.FormatPrice(session.Total()))
	return nil
}
