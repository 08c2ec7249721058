package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"pions/internal/domain"
	"pions/internal/service"
)

// Server is the MCP server for the pion board.
// It exposes tools, resources, and prompts so AI agents can arrange pions.
type Server struct {
	mcp   *server.MCPServer
	board *service.BoardService
	log   *zap.Logger
}

// Deps holds the dependencies passed from the App layer to the MCP server.
type Deps struct {
	Board *service.BoardService
	Log   *zap.Logger
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		board: deps.Board,
		log:   log.Named("mcp"),
	}

	s.mcp = server.NewMCPServer(
		"pions-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerBoardTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.log.Info("serving stdio")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// sync picks up writes made by the GUI since the last call.
func (s *Server) sync(ctx context.Context) {
	if _, err := s.board.Reload(ctx); err != nil {
		s.log.Warn("reload before tool call", zap.Error(err))
	}
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(b bool) *bool { return &b }

// intArg reads a whole number. JSON numbers arrive as float64.
func intArg(args map[string]any, key string) (int, error) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be a whole number", key)
		}
		return int(v), nil
	case int:
		return v, nil
	case nil:
		return 0, fmt.Errorf("%s is required", key)
	default:
		return 0, fmt.Errorf("%s must be a number", key)
	}
}

// coordArg reads a cell from two integer arguments and checks its bounds.
func coordArg(req mcp.CallToolRequest, rowKey, colKey string) (domain.Coord, error) {
	args := req.GetArguments()
	row, err := intArg(args, rowKey)
	if err != nil {
		return domain.Coord{}, err
	}
	col, err := intArg(args, colKey)
	if err != nil {
		return domain.Coord{}, err
	}
	c := domain.Coord{Row: row, Col: col}
	if err := c.Check(); err != nil {
		return domain.Coord{}, err
	}
	return c, nil
}
