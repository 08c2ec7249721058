package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("arrange_pairs",
		mcp.WithPromptDescription("Rearrange the board so identical pions form pairs"),
		mcp.WithArgument("color",
			mcp.ArgumentDescription("Only pair pions of this color (red, yellow, green or blue)"),
		),
	), s.handleArrangePairsPrompt)
}

func (s *Server) handleArrangePairsPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	scope := "every pion"
	if color := req.Params.Arguments["color"]; color != "" {
		scope = fmt.Sprintf("the %s pions", color)
	}
	return &mcp.GetPromptResult{
		Description: "Arrange identical pions into pairs",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Look at the pion board and arrange %s so that identical pions (same color AND same size) sit next to each other.

1. Call get_board to see the 6x4 grid (rows 0-5, columns 0-3).
2. Call matching_cells to see which identical pions already exist.
3. Use move_token to bring identical pions onto adjacent empty cells. Pions never stack, so the destination must be empty.
4. Do not place or remove pions unless asked.
5. Finish with matching_cells and summarize the pairs you formed. Every step can be reverted with undo.`, scope),
				},
			},
		},
	}, nil
}
