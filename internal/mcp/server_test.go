package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pions/internal/domain"
	"pions/internal/service"
	"pions/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.MemoryStateStore) {
	t.Helper()
	store := storage.NewMemoryStateStore(nil)
	board := service.NewBoardService(nil, store, nil, zap.NewNop())
	return New(Deps{Board: board, Log: zap.NewNop()}), store
}

func toolReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func cell(row, col int) domain.Coord { return domain.Coord{Row: row, Col: col} }

// ─────────────────────────────────────────────────────────────
// place / remove / move
// ─────────────────────────────────────────────────────────────

func TestPlaceToken(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.handlePlaceToken(ctx, toolReq(map[string]any{"row": float64(1), "col": float64(2), "color": "blue", "size": "large"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "blue-large")

	b := s.board.Board()
	got, ok := b.At(cell(1, 2))
	require.True(t, ok)
	assert.Equal(t, domain.Token{Color: domain.ColorBlue, Size: domain.SizeLarge}, got)
}

func TestPlaceToken_DefaultsToPreferences(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSetPreferences(ctx, toolReq(map[string]any{"color": "green"}))
	require.NoError(t, err)
	_, err = s.handlePlaceToken(ctx, toolReq(map[string]any{"row": float64(0), "col": float64(0)}))
	require.NoError(t, err)

	b := s.board.Board()
	got, _ := b.At(cell(0, 0))
	assert.Equal(t, domain.Token{Color: domain.ColorGreen, Size: domain.SizeSmall}, got)
}

func TestPlaceToken_Validation(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handlePlaceToken(ctx, toolReq(map[string]any{"row": float64(6), "col": float64(0)}))
	assert.ErrorIs(t, err, domain.ErrOutOfBounds)

	_, err = s.handlePlaceToken(ctx, toolReq(map[string]any{"row": float64(0)}))
	assert.ErrorContains(t, err, "col is required")

	_, err = s.handlePlaceToken(ctx, toolReq(map[string]any{"row": 0.5, "col": float64(0)}))
	assert.ErrorContains(t, err, "whole number")

	_, err = s.handlePlaceToken(ctx, toolReq(map[string]any{"row": float64(0), "col": float64(0), "color": "purple"}))
	assert.ErrorIs(t, err, domain.ErrUnknownColor)

	b := s.board.Board()
	assert.Zero(t, b.Count())
}

func TestRemoveToken(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.board.PlaceToken(ctx, cell(3, 3), domain.Token{})

	res, err := s.handleRemoveToken(ctx, toolReq(map[string]any{"row": float64(3), "col": float64(3)}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Removed")

	res, err = s.handleRemoveToken(ctx, toolReq(map[string]any{"row": float64(3), "col": float64(3)}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "already empty")
}

func TestMoveToken(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.board.PlaceToken(ctx, cell(0, 0), domain.Token{})
	s.board.PlaceToken(ctx, cell(0, 1), domain.Token{Color: domain.ColorBlue})

	args := func(fr, fc, tr, tc int) map[string]any {
		return map[string]any{"fromRow": float64(fr), "fromCol": float64(fc), "toRow": float64(tr), "toCol": float64(tc)}
	}

	res, err := s.handleMoveToken(ctx, toolReq(args(0, 0, 0, 1)))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "occupied")

	res, err = s.handleMoveToken(ctx, toolReq(args(4, 0, 4, 1)))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "No pion")

	res, err = s.handleMoveToken(ctx, toolReq(args(0, 0, 5, 3)))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Moved")

	b := s.board.Board()
	assert.True(t, b.Occupied(cell(5, 3)))
	assert.False(t, b.Occupied(cell(0, 0)))
}

// ─────────────────────────────────────────────────────────────
// reset / undo / matching
// ─────────────────────────────────────────────────────────────

func TestResetBoard_RequiresConfirm(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	s.board.PlaceToken(ctx, cell(2, 2), domain.Token{})

	_, err := s.handleResetBoard(ctx, toolReq(map[string]any{}))
	assert.ErrorContains(t, err, "confirm=true")
	_, err = s.handleResetBoard(ctx, toolReq(map[string]any{"confirm": "yes"}))
	assert.Error(t, err)

	b := s.board.Board()
	assert.Equal(t, 1, b.Count())

	_, err = s.handleResetBoard(ctx, toolReq(map[string]any{"confirm": true}))
	require.NoError(t, err)
	b = s.board.Board()
	assert.Zero(t, b.Count())

	res, err := s.handleUndo(ctx, toolReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "Last change undone", resultText(t, res))
	b = s.board.Board()
	assert.Equal(t, 1, b.Count())
}

func TestUndo_Empty(t *testing.T) {
	s, _ := newTestServer(t)
	res, err := s.handleUndo(context.Background(), toolReq(nil))
	require.NoError(t, err)
	assert.Equal(t, "Nothing to undo", resultText(t, res))
}

func TestMatchingCells(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	red := domain.Token{Color: domain.ColorRed, Size: domain.SizeSmall}
	s.board.PlaceToken(ctx, cell(0, 0), red)
	s.board.PlaceToken(ctx, cell(1, 2), red)
	s.board.PlaceToken(ctx, cell(2, 3), domain.Token{Color: domain.ColorBlue, Size: domain.SizeLarge})

	res, err := s.handleMatchingCells(ctx, toolReq(nil))
	require.NoError(t, err)

	var out struct {
		Groups []domain.MatchGroup `json:"groups"`
		Cells  []domain.Coord      `json:"cells"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, []domain.Coord{cell(0, 0), cell(1, 2)}, out.Cells)
	require.Len(t, out.Groups, 1)
	assert.Equal(t, red, out.Groups[0].Token)
}

func TestMatchingCells_EmptyBoardIsEmptyList(t *testing.T) {
	s, _ := newTestServer(t)
	res, err := s.handleMatchingCells(context.Background(), toolReq(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"groups": [], "cells": []}`, resultText(t, res))
}

// ─────────────────────────────────────────────────────────────
// preferences / board / external changes
// ─────────────────────────────────────────────────────────────

func TestSetPreferences(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleSetPreferences(ctx, toolReq(map[string]any{}))
	assert.Error(t, err)
	_, err = s.handleSetPreferences(ctx, toolReq(map[string]any{"color": "red", "size": "giant"}))
	assert.ErrorIs(t, err, domain.ErrUnknownSize)
	assert.Equal(t, domain.SizeSmall, s.board.View().SelectedSize)

	res, err := s.handleSetPreferences(ctx, toolReq(map[string]any{"color": "yellow", "size": "medium"}))
	require.NoError(t, err)
	assert.Equal(t, "Preferred pion is now yellow medium", resultText(t, res))
}

func TestGetBoard_PicksUpExternalWrites(t *testing.T) {
	s, store := newTestServer(t)
	ctx := context.Background()

	gui := service.Restore(ctx, store, nil, zap.NewNop())
	gui.PlaceToken(ctx, cell(4, 1), domain.Token{Color: domain.ColorYellow, Size: domain.SizeLarge})

	res, err := s.handleGetBoard(ctx, toolReq(nil))
	require.NoError(t, err)

	var view domain.BoardView
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &view))
	got, ok := view.Board.At(cell(4, 1))
	require.True(t, ok)
	assert.Equal(t, domain.ColorYellow, got.Color)
}

func TestBoardResource(t *testing.T) {
	s, _ := newTestServer(t)
	contents, err := s.handleBoardResource(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, boardURI, text.URI)
	assert.Contains(t, text.Text, `"mode": "idle"`)
}

func TestArrangePairsPrompt(t *testing.T) {
	s, _ := newTestServer(t)

	var req mcp.GetPromptRequest
	req.Params.Arguments = map[string]string{"color": "blue"}
	res, err := s.handleArrangePairsPrompt(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	tc, ok := res.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, tc.Text, "the blue pions")
	assert.Contains(t, tc.Text, "move_token")
}
