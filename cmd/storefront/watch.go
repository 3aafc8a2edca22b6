package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/events"
)

var watchFlags struct {
	url    string
	replay bool
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print tickets as they are issued",
	Long: `Attach to the event bus of a running shop or MCP server and print each
issued ticket. The bus must listen on a port (events.port in the config).`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.url, "url", "", "NATS URL (default: nats://127.0.0.1:<events.port>)")
	watchCmd.Flags().BoolVar(&watchFlags.replay, "replay", false, "Print tickets retained before attaching")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	url := watchFlags.url
	if url == "" {
		if cfg.Events.Port == 0 {
			return fmt.Errorf("events.port is not set, use --url to specify the bus")
		}
		url = fmt.Sprintf("nats://127.0.0.1:%d", cfg.Events.Port)
	}

	nc, err := events.Connect(url)
	if err != nil {
		return err
	}
	defer func() { _ = events.Shutdown(nc, nil) }()

	out := cmd.OutOrStdout()
	if watchFlags.replay {
		if err := replay(ctx, out, nc); err != nil {
			return err
		}
	}

	sub, err := events.Subscribe(nc, func(e events.TicketEvent) {
		printEvent(out, e)
	})
	if err != nil {
		return fmt.Errorf("subscribing to tickets: %w", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	fmt.Fprintf(out, "Watching tickets on %s\n", url)
	<-ctx.Done()
	return nil
}

// replay prints the tickets the stream still holds.
func replay(ctx context.Context, out io.Writer, nc *nats.Conn) error {
	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("creating jetstream context: %w", err)
	}
	stream, err := js.Stream(ctx, events.StreamName)
	if err != nil {
		return fmt.Errorf("opening ticket stream: %w", err)
	}
	recent, err := events.Recent(ctx, stream)
	if err != nil {
		return err
	}
	for _, e := range recent {
		printEvent(out, e)
	}
	return nil
}

func printEvent(out io.Writer, e events.TicketEvent) {
	what := e.Product
	if e.ServerType != "" {
		what = "serveur " + e.ServerType
	}
	fmt.Fprintf(out, "%s  %-24s %-20s %s\n",
		e.IssuedAt.Format("15:04:05"), e.Reference, what, catalog.FormatPrice(e.Total))
}
