// Package mcpserver exposes the catalog and the server wizard as MCP tools
// over streamable HTTP.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
)

// Server manages an MCP HTTP server backed by a session registry.
type Server struct {
	catalog   *catalog.Catalog
	catMu     sync.RWMutex
	registry  *Registry
	announcer events.Announcer

	mcpServer  *server.MCPServer
	httpServer *server.StreamableHTTPServer
	stdServer  *http.Server
	port       int
	mu         sync.Mutex
}

// New creates a server. A nil announcer discards tickets; a nil generator
// uses order.NewGenerator().
func New(cat *catalog.Catalog, generator *order.Generator, announcer events.Announcer) *Server {
	if generator == nil {
		generator = order.NewGenerator()
	}
	if announcer == nil {
		announcer = events.Nop{}
	}
	s := &Server{
		catalog:   cat,
		registry:  NewRegistry(generator),
		announcer: announcer,
		mcpServer: server.NewMCPServer(
			"storefront",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	return s
}

// SetCatalog replaces the catalog served by catalog-list. Open wizard
// sessions are unaffected.
func (s *Server) SetCatalog(c *catalog.Catalog) {
	s.catMu.Lock()
	defer s.catMu.Unlock()
	s.catalog = c
}

func (s *Server) currentCatalog() *catalog.Catalog {
	s.catMu.RLock()
	defer s.catMu.RUnlock()
	return s.catalog
}

// Registry returns the sessions opened through the server.
func (s *Server) Registry() *Registry { return s.registry }

// Start listens on 127.0.0.1:port (0 picks a free port) and serves /mcp in
// the background. It returns the bound port.
func (s *Server) Start(ctx context.Context, port int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return 0, fmt.Errorf("listening on port %d: %w", port, err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mcpHandler := server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	)
	mux.Handle("/mcp", mcpHandler)

	s.stdServer = &http.Server{Handler: mux}
	s.httpServer = mcpHandler

	// Capture for the goroutine; Stop clears the field.
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("mcp: server error: %v", err)
		}
	}()

	logger.Info("mcp: serving on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("stopping mcp server: %w", err)
	}
	s.httpServer = nil
	s.stdServer = nil
	logger.Debug("mcp: stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
