// Package events announces issued tickets over an embedded NATS server.
// Announcements are best effort: a broken bus never blocks a flow.
package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/takayama/storefront/internal/logger"
)

// Options configures the embedded server.
type Options struct {
	// Port makes the server listen on 127.0.0.1:Port so other processes
	// (storefront watch) can attach. Zero keeps it in-process only.
	Port int
	// StoreDir is the JetStream directory. Tickets are kept in a memory
	// stream, so nothing is written there beyond server metadata.
	StoreDir string
}

// StartEmbedded starts a NATS server with JetStream enabled.
func StartEmbedded(opts Options) (*server.Server, error) {
	logger.Debug("events: starting embedded NATS server (port=%d)", opts.Port)

	serverOpts := &server.Options{
		JetStream: true,
		StoreDir:  opts.StoreDir,
		NoSigs:    true,
	}
	if opts.Port > 0 {
		serverOpts.Host = "127.0.0.1"
		serverOpts.Port = opts.Port
	} else {
		serverOpts.DontListen = true
	}

	ns, err := server.NewServer(serverOpts)
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	logger.Debug("events: NATS server ready")
	return ns, nil
}

// ConnectInProcess opens a connection that bypasses the network.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	nc, err := nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		return nil, fmt.Errorf("connecting to nats in-process: %w", err)
	}
	return nc, nil
}

// Connect dials a storefront bus started with a port.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("storefront-watch"))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}
	return nc, nil
}

// Shutdown drains the connection, then stops the server. Either may be nil.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("events: drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("events: drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
		case <-time.After(5 * time.Second):
			return errors.New("nats server shutdown timed out")
		}
	}

	logger.Debug("events: shutdown complete")
	return nil
}

// Broker bundles the embedded server, its in-process connection and the
// ticket stream.
type Broker struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
	Stream jetstream.Stream
}

// Start brings up the server, connects to it and sets up the ticket stream.
func Start(ctx context.Context, opts Options) (*Broker, error) {
	ns, err := StartEmbedded(opts)
	if err != nil {
		return nil, err
	}

	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	stream, err := SetupStream(ctx, js)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up ticket stream: %w", err)
	}

	return &Broker{Server: ns, Conn: nc, JS: js, Stream: stream}, nil
}

// URL is the client URL of a listening broker, or "" for in-process ones.
func (b *Broker) URL() string {
	if b.Server.Addr() == nil {
		return ""
	}
	return b.Server.ClientURL()
}

// Announcer returns a Bus publishing through the broker.
func (b *Broker) Announcer() *Bus {
	return NewBus(b.JS)
}

// Close drains and stops the broker.
func (b *Broker) Close() error {
	return Shutdown(b.Conn, b.Server)
}
