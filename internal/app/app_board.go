package app

import (
	"fmt"

	"go.uber.org/zap"

	"pions/internal/domain"
)

// ============================================================
// Board
// ============================================================

// GetState returns the current board view. The renderer calls it once
// on load and then follows board:changed events.
func (a *App) GetState() domain.BoardView {
	return a.board.View()
}

// ClickCell handles a click or tap on a cell.
func (a *App) ClickCell(row, col int) (domain.BoardView, error) {
	if _, err := a.interaction.ClickCell(a.ctx, domain.Coord{Row: row, Col: col}); err != nil {
		return a.board.View(), err
	}
	return a.board.View(), nil
}

// ChooseMove arms move mode for the selected pion.
func (a *App) ChooseMove() domain.BoardView {
	a.interaction.ChooseMove(a.ctx)
	return a.board.View()
}

// ChooseDelete removes the selected pion.
func (a *App) ChooseDelete() domain.BoardView {
	a.interaction.ChooseDelete(a.ctx)
	return a.board.View()
}

// ChooseToken places a pion of the given color and size on the cell
// awaiting placement.
func (a *App) ChooseToken(color, size string) (domain.BoardView, error) {
	t, err := domain.ParseToken(color, size)
	if err != nil {
		return a.board.View(), err
	}
	a.interaction.ChooseToken(a.ctx, t)
	return a.board.View(), nil
}

// ChooseSelectedToken places a pion built from the preferred color and size.
func (a *App) ChooseSelectedToken() domain.BoardView {
	a.interaction.ChooseSelectedToken(a.ctx)
	return a.board.View()
}

// Cancel dismisses the selection or the placement panel.
func (a *App) Cancel() domain.BoardView {
	a.interaction.Cancel(a.ctx)
	return a.board.View()
}

// Undo restores the board as it was before the last change.
func (a *App) Undo() bool {
	return a.board.Undo(a.ctx)
}

// ResetBoard asks for confirmation and clears the board. Returns false
// when the user declined.
func (a *App) ResetBoard() (bool, error) {
	ok, err := a.confirm(a.ctx)
	if err != nil {
		return false, fmt.Errorf("confirm reset: %w", err)
	}
	if !ok {
		return false, nil
	}
	a.board.ResetBoard(a.ctx)
	a.log.Info("board reset")
	return true, nil
}

// SelectColor sets the preferred color.
func (a *App) SelectColor(color string) error {
	c, err := domain.ParseColor(color)
	if err != nil {
		return err
	}
	a.board.SetSelectedColor(a.ctx, c)
	return nil
}

// SelectSize sets the preferred size.
func (a *App) SelectSize(size string) error {
	s, err := domain.ParseSize(size)
	if err != nil {
		return err
	}
	a.board.SetSelectedSize(a.ctx, s)
	return nil
}

// MatchingCells lists the cells to highlight.
func (a *App) MatchingCells() []domain.Coord {
	return a.board.MatchingCells()
}

// History lists the undo snapshots, oldest first, without their boards.
func (a *App) History() []HistoryItem {
	entries := a.board.History()
	out := make([]HistoryItem, len(entries))
	for i, e := range entries {
		out[i] = HistoryItem{ID: e.ID, Label: e.Label, CreatedAt: e.CreatedAt.UnixMilli()}
	}
	a.log.Debug("history listed", zap.Int("entries", len(out)))
	return out
}
