// ABOUTME: MCP server setup for the fitness store.
// ABOUTME: Wraps the MCP server with the store and the exercise catalog.
package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/harperreed/fitness/internal/catalog"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// Server wraps the MCP server with storage access. The store's session is
// the server's session: one login serves every later tool call.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	lib       *catalog.Catalog
	log       zerolog.Logger
	now       func() time.Time
}

// NewServer creates a new MCP server over repo and lib.
func NewServer(repo storage.Repository, lib *catalog.Catalog, log zerolog.Logger) (*Server, error) {
	if repo == nil {
		return nil, errors.New("mcp server needs a repository")
	}
	if lib == nil {
		return nil, errors.New("mcp server needs an exercise catalog")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		lib:       lib,
		log:       log.With().Str("component", "mcp").Logger(),
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info().Msg("serving on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
