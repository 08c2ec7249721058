package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"pions/internal/domain"
)

const (
	colorEnumDesc = "Pion color: red, yellow, green or blue"
	sizeEnumDesc  = "Pion size: small, medium or large"
)

func (s *Server) registerBoardTools() {
	// ── get_board ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_board",
		mcp.WithDescription("Get the 6x4 board, the preferred color and size, and the groups of identical pions"),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleGetBoard)

	// ── place_token ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("place_token",
		mcp.WithDescription("Place a pion on a cell, replacing any pion already there. Color and size default to the preferred ones."),
		mcp.WithNumber("row", mcp.Description("Row, 0 to 5"), mcp.Required()),
		mcp.WithNumber("col", mcp.Description("Column, 0 to 3"), mcp.Required()),
		mcp.WithString("color", mcp.Description(colorEnumDesc)),
		mcp.WithString("size", mcp.Description(sizeEnumDesc)),
	), s.handlePlaceToken)

	// ── remove_token ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_token",
		mcp.WithDescription("Remove the pion on a cell"),
		mcp.WithNumber("row", mcp.Description("Row, 0 to 5"), mcp.Required()),
		mcp.WithNumber("col", mcp.Description("Column, 0 to 3"), mcp.Required()),
	), s.handleRemoveToken)

	// ── move_token ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_token",
		mcp.WithDescription("Move a pion to an empty cell. Pions never stack."),
		mcp.WithNumber("fromRow", mcp.Required()),
		mcp.WithNumber("fromCol", mcp.Required()),
		mcp.WithNumber("toRow", mcp.Required()),
		mcp.WithNumber("toCol", mcp.Required()),
	), s.handleMoveToken)

	// ── reset_board ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("reset_board",
		mcp.WithDescription("Remove every pion from the board. Undoable."),
		mcp.WithBoolean("confirm",
			mcp.Description("Must be true"),
			mcp.Required(),
		),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleResetBoard)

	// ── undo ───────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Restore the board as it was before the last change"),
	), s.handleUndo)

	// ── matching_cells ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("matching_cells",
		mcp.WithDescription("List groups of two or more pions sharing both color and size"),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handleMatchingCells)

	// ── set_preferences ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_preferences",
		mcp.WithDescription("Set the preferred color and/or size used for quick placement"),
		mcp.WithString("color", mcp.Description(colorEnumDesc)),
		mcp.WithString("size", mcp.Description(sizeEnumDesc)),
	), s.handleSetPreferences)
}

func (s *Server) handleGetBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	return jsonResult(s.board.View())
}

func (s *Server) handlePlaceToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at, err := coordArg(req, "row", "col")
	if err != nil {
		return nil, err
	}
	s.sync(ctx)

	view := s.board.View()
	color := req.GetString("color", view.SelectedColor.String())
	size := req.GetString("size", view.SelectedSize.String())
	t, err := domain.ParseToken(color, size)
	if err != nil {
		return nil, err
	}

	s.board.PlaceToken(ctx, at, t)
	s.log.Info("token placed", zap.Stringer("token", t), zap.Stringer("cell", at))
	return textResult(fmt.Sprintf("Placed %s at %s", t, at)), nil
}

func (s *Server) handleRemoveToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at, err := coordArg(req, "row", "col")
	if err != nil {
		return nil, err
	}
	s.sync(ctx)
	if !s.board.RemoveToken(ctx, at) {
		return textResult(fmt.Sprintf("Cell %s is already empty", at)), nil
	}
	return textResult(fmt.Sprintf("Removed pion at %s", at)), nil
}

func (s *Server) handleMoveToken(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := coordArg(req, "fromRow", "fromCol")
	if err != nil {
		return nil, err
	}
	to, err := coordArg(req, "toRow", "toCol")
	if err != nil {
		return nil, err
	}
	s.sync(ctx)

	board := s.board.Board()
	switch {
	case !board.Occupied(from):
		return textResult(fmt.Sprintf("No pion at %s, nothing moved", from)), nil
	case board.Occupied(to):
		return textResult(fmt.Sprintf("Cell %s is occupied, nothing moved", to)), nil
	}
	if !s.board.MoveToken(ctx, from, to) {
		return textResult("Board changed meanwhile, nothing moved"), nil
	}
	return textResult(fmt.Sprintf("Moved pion %s -> %s", from, to)), nil
}

func (s *Server) handleResetBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if confirm, _ := req.GetArguments()["confirm"].(bool); !confirm {
		return nil, fmt.Errorf("reset_board requires confirm=true")
	}
	s.sync(ctx)
	s.board.ResetBoard(ctx)
	s.log.Info("board reset")
	return textResult("Board cleared. Use undo to restore it."), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	if !s.board.Undo(ctx) {
		return textResult("Nothing to undo"), nil
	}
	return textResult("Last change undone"), nil
}

func (s *Server) handleMatchingCells(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync(ctx)
	groups := s.board.MatchGroups()
	if groups == nil {
		groups = []domain.MatchGroup{}
	}
	return jsonResult(map[string]any{
		"groups": groups,
		"cells":  s.board.MatchingCells(),
	})
}

func (s *Server) handleSetPreferences(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	colorName := req.GetString("color", "")
	sizeName := req.GetString("size", "")
	if colorName == "" && sizeName == "" {
		return nil, fmt.Errorf("color or size is required")
	}

	var (
		color domain.Color
		size  domain.Size
		err   error
	)
	if colorName != "" {
		if color, err = domain.ParseColor(colorName); err != nil {
			return nil, err
		}
	}
	if sizeName != "" {
		if size, err = domain.ParseSize(sizeName); err != nil {
			return nil, err
		}
	}

	s.sync(ctx)
	if colorName != "" {
		s.board.SetSelectedColor(ctx, color)
	}
	if sizeName != "" {
		s.board.SetSelectedSize(ctx, size)
	}
	view := s.board.View()
	return textResult(fmt.Sprintf("Preferred pion is now %s %s", view.SelectedColor, view.SelectedSize)), nil
}
