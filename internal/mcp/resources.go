// ABOUTME: MCP resource implementations for the fitness store.
// ABOUTME: Provides fitness://training/recent and fitness://body/latest.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	recentTrainingURI = "fitness://training/recent"
	latestBodyURI     = "fitness://body/latest"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentTrainingURI,
		Name:        "Recent Training",
		Description: "The logged-in user's last 10 training records",
		MIMEType:    "application/json",
	}, s.handleRecentTrainingResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestBodyURI,
		Name:        "Latest Body Stats",
		Description: "The logged-in user's newest body measurement",
		MIMEType:    "application/json",
	}, s.handleLatestBodyResource)
}

// Resource handlers

func (s *Server) handleRecentTrainingResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	records, err := s.repo.GetTrainingRecords(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list training records: %w", err)
	}

	who, _ := s.repo.CurrentUser()
	return jsonResource(recentTrainingURI, map[string]any{
		"username": who.Username,
		"records":  records,
		"count":    len(records),
	})
}

func (s *Server) handleLatestBodyResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	latest, ok, err := s.repo.GetLatestBodyStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest body stats: %w", err)
	}

	who, _ := s.repo.CurrentUser()
	result := map[string]any{"username": who.Username, "found": ok}
	if ok {
		result["body_stats"] = latest
	}
	return jsonResource(latestBodyURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
