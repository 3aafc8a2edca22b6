package main

import (
	"context"
	"fmt"
	"os"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/config"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/hooks"
	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
)

// runtime holds what every command builds from the configuration.
type runtime struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	generator *order.Generator
	announcer events.Announcer

	broker   *events.Broker
	storeDir string
}

// loadConfig loads the layered configuration and applies the root flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlags.logLevel != "" {
		cfg.LogLevel = rootFlags.logLevel
	}
	if rootFlags.catalog != "" {
		cfg.CatalogFile = rootFlags.catalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	return cfg, nil
}

// newRuntime prepares the configuration, catalog and ticket generator.
// withEvents also starts the embedded broker when events are enabled.
func newRuntime(ctx context.Context, withEvents bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:     cfg,
		catalog: cat,
		generator: order.NewGenerator(
			order.WithPrefix(order.KindOrder, cfg.OrderPrefix),
			order.WithPrefix(order.KindServer, cfg.ServerPrefix),
		),
		announcer: events.Nop{},
	}

	if withEvents && cfg.Events.Enabled {
		if err := rt.startEvents(ctx); err != nil {
			return nil, err
		}
	}
	if err := rt.loadHooks(); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// loadHooks chains the ticket_issued hooks of the working directory after
// the event bus.
func (rt *runtime) loadHooks() error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := hooks.LoadConfig(wd)
	if err != nil {
		return err
	}
	if a := hooks.NewAnnouncer(cfg, wd); a != nil {
		logger.Info("hooks: %d ticket_issued command(s) from %s", len(cfg.Hooks.TicketIssued), hooks.ConfigFileName)
		rt.announcer = events.Multi{rt.announcer, a}
	}
	return nil
}

func (rt *runtime) startEvents(ctx context.Context) error {
	dir, err := os.MkdirTemp("", "storefront-nats-*")
	if err != nil {
		return fmt.Errorf("creating nats store dir: %w", err)
	}

	broker, err := events.Start(ctx, events.Options{Port: rt.cfg.Events.Port, StoreDir: dir})
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("failed to start events: %w", err)
	}

	rt.broker = broker
	rt.storeDir = dir
	rt.announcer = broker.Announcer()
	if url := broker.URL(); url != "" {
		logger.Info("events: announcing tickets on %s", url)
	}
	return nil
}

// Close stops the broker if one was started.
func (rt *runtime) Close() {
	if rt.broker != nil {
		if err := rt.broker.Close(); err != nil {
			logger.Warn("events: shutdown: %v", err)
		}
		rt.broker = nil
	}
	if rt.storeDir != "" {
		_ = os.RemoveAll(rt.storeDir)
		rt.storeDir = ""
	}
}
