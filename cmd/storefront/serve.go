package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/mcpserver"
)

var serveFlags struct {
	port  int
	watch bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and configurator as MCP tools",
	Long: `Start an MCP server over streamable HTTP.

Each wizard-open call starts its own configurator session; the other wizard
tools take the returned session ID and answer with the session snapshot.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", -1, "HTTP port (default: mcp.port from config, 0 picks a free port)")
	serveCmd.Flags().BoolVarP(&serveFlags.watch, "watch", "w", false, "Reload the catalog file when it changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	port := rt.cfg.MCP.Port
	if serveFlags.port >= 0 {
		port = serveFlags.port
	}

	srv := mcpserver.New(rt.catalog, rt.generator, rt.announcer)
	if _, err := srv.Start(ctx, port); err != nil {
		return fmt.Errorf("failed to start mcp server: %w", err)
	}
	if serveFlags.watch {
		if rt.cfg.CatalogFile == "" {
			logger.Warn("--watch has no effect with the built-in catalog")
		} else {
			w, err := catalog.NewWatcher(rt.cfg.CatalogFile, srv.SetCatalog)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())
	if rt.broker != nil && rt.broker.URL() != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Ticket events on %s\n", rt.broker.URL())
	}

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}
