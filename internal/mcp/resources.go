// ABOUTME: MCP resource implementations for the run and mood tracker.
// ABOUTME: Provides moodrun://recents with the latest run and mood.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const recentsURI = "moodrun://recents"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentsURI,
		Name:        "Recent Run and Mood",
		Description: "Most recently dated run and mood, null when none are logged",
		MIMEType:    "application/json",
	}, s.handleRecentsResource)
}

// Resource handlers

func (s *Server) handleRecentsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.recents(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      recentsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
