// ABOUTME: MCP server setup for the run and mood tracker.
// ABOUTME: Wraps the MCP server around the tracker service.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/moodrun/internal/tracker"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	svc       *tracker.Service
}

// NewServer creates a new MCP server backed by svc.
func NewServer(svc *tracker.Service, version string) (*Server, error) {
	if svc == nil {
		return nil, errors.New("mcp: nil tracker service")
	}
	if version == "" {
		version = "dev"
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "moodrun",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
