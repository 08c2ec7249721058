package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const boardURI = "pions://board"

func (s *Server) registerResources() {
	// ── pions://board ──────────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		boardURI,
		"Pion board",
		mcp.WithMIMEType("application/json"),
	), s.handleBoardResource)
}

func (s *Server) handleBoardResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.sync(ctx)
	data, err := json.MarshalIndent(s.board.View(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal board: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      boardURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
