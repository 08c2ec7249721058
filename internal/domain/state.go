package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrStateNotFound = errors.New("no saved state")

// Mode is the interaction state of the board editor.
type Mode string

const (
	ModeIdle              Mode = "idle"
	ModeCellSelected      Mode = "cellSelected"
	ModeAwaitingMove      Mode = "awaitingMove"
	ModeAwaitingPlacement Mode = "awaitingPlacement"
)

// Interaction is the selection / pending-placement state. Cell is only
// meaningful when Mode is not ModeIdle.
type Interaction struct {
	Mode Mode  `json:"mode"`
	Cell Coord `json:"cell"`
}

// Selection is the occupied cell under inspection (selected or being moved).
func (i Interaction) Selection() (Coord, bool) {
	if i.Mode == ModeCellSelected || i.Mode == ModeAwaitingMove {
		return i.Cell, true
	}
	return Coord{}, false
}

// PendingPlacement is the empty cell awaiting a token choice.
func (i Interaction) PendingPlacement() (Coord, bool) {
	if i.Mode == ModeAwaitingPlacement {
		return i.Cell, true
	}
	return Coord{}, false
}

var Idle = Interaction{Mode: ModeIdle}

// AppState is the root state of one editing session.
type AppState struct {
	Board         Board
	History       *History
	SelectedColor Color
	SelectedSize  Size
	Interaction   Interaction
}

// NewAppState returns an empty board with red/small preferences.
func NewAppState() *AppState {
	return &AppState{
		History:       NewHistory(HistoryLimit),
		SelectedColor: ColorRed,
		SelectedSize:  SizeSmall,
		Interaction:   Idle,
	}
}

// BoardView is the read-only state handed to the renderer after every change.
type BoardView struct {
	Board            Board        `json:"board"`
	SelectedColor    Color        `json:"selectedColor"`
	SelectedSize     Size         `json:"selectedSize"`
	Mode             Mode         `json:"mode"`
	Selection        *Coord       `json:"selection"`
	PendingPlacement *Coord       `json:"pendingPlacement"`
	Matches          []MatchGroup `json:"matches"`
	CanUndo          bool         `json:"canUndo"`
	HistoryLen       int          `json:"historyLen"`
}

// SavedState is the persisted record. History is deliberately absent.
type SavedState struct {
	Board         Board `json:"board"`
	SelectedColor Color `json:"selectedColor"`
	SelectedSize  Size  `json:"selectedSize"`
}

// DefaultSavedState is used when nothing has been persisted yet.
func DefaultSavedState() SavedState {
	return SavedState{SelectedColor: ColorRed, SelectedSize: SizeSmall}
}

// DecodeSavedState decodes a persisted record field by field. Fields that
// are missing or malformed keep their defaults; every problem found is
// returned so the caller can log it. The returned state is always usable.
func DecodeSavedState(data []byte) (SavedState, []error) {
	out := DefaultSavedState()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return out, []error{fmt.Errorf("decode saved state: %w", err)}
	}

	var errs []error
	if v, ok := raw["board"]; ok && string(v) != "null" {
		var b Board
		if err := json.Unmarshal(v, &b); err != nil {
			errs = append(errs, fmt.Errorf("field board: %w", err))
		} else {
			out.Board = b
		}
	}
	if v, ok := raw["selectedColor"]; ok && string(v) != "null" {
		var c Color
		if err := json.Unmarshal(v, &c); err != nil {
			errs = append(errs, fmt.Errorf("field selectedColor: %w", err))
		} else {
			out.SelectedColor = c
		}
	}
	if v, ok := raw["selectedSize"]; ok && string(v) != "null" {
		var s Size
		if err := json.Unmarshal(v, &s); err != nil {
			errs = append(errs, fmt.Errorf("field selectedSize: %w", err))
		} else {
			out.SelectedSize = s
		}
	}
	return out, errs
}

// StateStore persists the single saved-state record (last write wins).
// LoadState returns ErrStateNotFound when nothing has been saved.
type StateStore interface {
	LoadState(ctx context.Context) ([]byte, error)
	SaveState(ctx context.Context, data []byte) error
	Close() error
}
