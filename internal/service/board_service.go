package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pions/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Board Service: the board model
// ─────────────────────────────────────────────────────────────
//
// BoardService is the single owner of the session's AppState. Every
// board-affecting intent goes through it. Each mutation takes a full
// pre-image snapshot for undo, persists the saved-state record and emits
// board:changed with a fresh BoardView.
//
// Wails binding calls, the autosave tick and the external-change watcher
// run on different goroutines; mu makes every operation atomic.

// BoardService manages the board, its undo history and its persistence.
type BoardService struct {
	mu        sync.Mutex
	state     *domain.AppState
	store     domain.StateStore
	emitter   EventEmitter
	log       *zap.Logger
	lastSaved []byte
	now       func() time.Time
}

// NewBoardService wraps an existing AppState. Use LoadAppState to build
// one from the store.
func NewBoardService(state *domain.AppState, store domain.StateStore, emitter EventEmitter, log *zap.Logger) *BoardService {
	if state == nil {
		state = domain.NewAppState()
	}
	if state.History == nil {
		state.History = domain.NewHistory(domain.HistoryLimit)
	}
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &BoardService{
		state:   state,
		store:   store,
		emitter: emitter,
		log:     log.Named("board"),
		now:     time.Now,
	}
}

// LoadAppState restores the saved record from store. A missing record
// yields defaults; malformed fields are logged and replaced by their
// defaults while the well-formed ones are kept.
func LoadAppState(ctx context.Context, store domain.StateStore, log *zap.Logger) (*domain.AppState, []byte) {
	state := domain.NewAppState()
	if log == nil {
		log = zap.NewNop()
	}

	data, err := store.LoadState(ctx)
	if errors.Is(err, domain.ErrStateNotFound) {
		log.Info("no saved board, starting empty")
		return state, nil
	}
	if err != nil {
		log.Error("load saved board failed, starting empty", zap.Error(err))
		return state, nil
	}

	saved, errs := domain.DecodeSavedState(data)
	for _, e := range errs {
		log.Warn("saved board partially recovered", zap.Error(e))
	}
	state.Board = saved.Board
	state.SelectedColor = saved.SelectedColor
	state.SelectedSize = saved.SelectedSize
	log.Info("saved board restored", zap.Int("tokens", state.Board.Count()))
	return state, data
}

// Restore builds a BoardService from whatever the store holds.
func Restore(ctx context.Context, store domain.StateStore, emitter EventEmitter, log *zap.Logger) *BoardService {
	state, data := LoadAppState(ctx, store, log)
	s := NewBoardService(state, store, emitter, log)
	s.lastSaved = data
	return s
}

// ── Queries ────────────────────────────────────────────────

// View returns a read-only copy of the current state for rendering.
func (s *BoardService) View() domain.BoardView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Board returns a deep copy of the current board.
func (s *BoardService) Board() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Board.Clone()
}

// Interaction returns the current selection / placement state.
func (s *BoardService) Interaction() domain.Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Interaction
}

// MatchingCells returns every cell whose (color, size) pair occurs at
// least twice on the board.
func (s *BoardService) MatchingCells() []domain.Coord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Board.MatchingCells()
}

// MatchGroups returns the matching cells grouped by token.
func (s *BoardService) MatchGroups() []domain.MatchGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Board.MatchGroups()
}

// Snapshot returns a deep copy of the board as a history entry.
func (s *BoardService) Snapshot() domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked("snapshot")
}

// History returns the undo stack, oldest first.
func (s *BoardService) History() []domain.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.History.Entries()
}

// ── Mutations ──────────────────────────────────────────────

// PlaceToken puts t at `at`, replacing whatever was there, and clears a
// pending placement.
func (s *BoardService) PlaceToken(ctx context.Context, at domain.Coord, t domain.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeLocked(ctx, at, t)
	s.emitLocked(ctx)
}

// RemoveToken empties an occupied cell. Removing from an empty cell is a
// no-op and records nothing.
func (s *BoardService) RemoveToken(ctx context.Context, at domain.Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removeLocked(ctx, at) {
		return false
	}
	s.emitLocked(ctx)
	return true
}

// MoveToken moves the token at from to an empty cell. Tokens never
// stack: an occupied destination (or an empty source) rejects the move
// silently and returns false.
func (s *BoardService) MoveToken(ctx context.Context, from, to domain.Coord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.moveLocked(ctx, from, to) {
		return false
	}
	s.emitLocked(ctx)
	return true
}

// ResetBoard clears every cell. Confirmation belongs to the caller.
func (s *BoardService) ResetBoard(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushLocked("reset board")
	s.state.Board = domain.Board{}
	s.state.Interaction = domain.Idle
	s.persistLocked(ctx)
	s.emitLocked(ctx)
}

// Undo restores the most recent pre-image. Undo does not record a redo
// entry. Returns false when there is nothing to undo.
func (s *BoardService) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.state.History.Pop()
	if !ok {
		return false
	}
	s.state.Board = entry.Board
	s.state.Interaction = domain.Idle
	s.log.Debug("undo", zap.String("entry", entry.ID), zap.String("label", entry.Label))
	s.persistLocked(ctx)
	s.emitLocked(ctx)
	return true
}

// SetSelectedColor updates the preferred color for quick placement.
func (s *BoardService) SetSelectedColor(ctx context.Context, c domain.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedColor == c {
		return
	}
	s.state.SelectedColor = c
	s.persistLocked(ctx)
	s.emitLocked(ctx)
}

// SetSelectedSize updates the preferred size for quick placement.
func (s *BoardService) SetSelectedSize(ctx context.Context, size domain.Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedSize == size {
		return
	}
	s.state.SelectedSize = size
	s.persistLocked(ctx)
	s.emitLocked(ctx)
}

// ── Persistence ────────────────────────────────────────────

// Persist writes the saved-state record when it differs from the last
// successful write. The autosave tick and shutdown flush call this.
func (s *BoardService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// Reload adopts the stored record when another process changed it. The
// current board is pushed onto the undo stack first so the change can be
// reverted. Returns false when the stored record is what we last wrote.
func (s *BoardService) Reload(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.LoadState(ctx)
	if errors.Is(err, domain.ErrStateNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reload state: %w", err)
	}
	if bytes.Equal(data, s.lastSaved) {
		return false, nil
	}

	saved, errs := domain.DecodeSavedState(data)
	for _, e := range errs {
		s.log.Warn("external board partially recovered", zap.Error(e))
	}
	if saved.Board.Equal(&s.state.Board) &&
		saved.SelectedColor == s.state.SelectedColor &&
		saved.SelectedSize == s.state.SelectedSize {
		s.lastSaved = data
		return false, nil
	}

	if !saved.Board.Equal(&s.state.Board) {
		s.pushLocked("external change")
	}
	s.state.Board = saved.Board
	s.state.SelectedColor = saved.SelectedColor
	s.state.SelectedSize = saved.SelectedSize
	s.state.Interaction = domain.Idle
	s.lastSaved = data
	s.log.Info("board reloaded from store", zap.Int("tokens", s.state.Board.Count()))

	view := s.viewLocked()
	s.emitter.Emit(ctx, EventBoardReloaded, view)
	s.emitter.Emit(ctx, EventBoardChanged, view)
	return true, nil
}

// ── Locked helpers (shared with InteractionService) ────────

func (s *BoardService) placeLocked(ctx context.Context, at domain.Coord, t domain.Token) {
	s.pushLocked(fmt.Sprintf("place %s at %s", t, at))
	s.state.Board.Set(at, t)
	if s.state.Interaction.Mode == domain.ModeAwaitingPlacement {
		s.state.Interaction = domain.Idle
	}
	s.persistLocked(ctx)
}

func (s *BoardService) removeLocked(ctx context.Context, at domain.Coord) bool {
	if !s.state.Board.Occupied(at) {
		return false
	}
	t, _ := s.state.Board.At(at)
	s.pushLocked(fmt.Sprintf("remove %s at %s", t, at))
	s.state.Board.Clear(at)
	if _, selected := s.state.Interaction.Selection(); selected {
		s.state.Interaction = domain.Idle
	}
	s.persistLocked(ctx)
	return true
}

func (s *BoardService) moveLocked(ctx context.Context, from, to domain.Coord) bool {
	t, ok := s.state.Board.At(from)
	if !ok || s.state.Board.Occupied(to) {
		return false
	}
	s.pushLocked(fmt.Sprintf("move %s %s -> %s", t, from, to))
	s.state.Board.Set(to, t)
	s.state.Board.Clear(from)
	if _, selected := s.state.Interaction.Selection(); selected {
		s.state.Interaction = domain.Idle
	}
	s.persistLocked(ctx)
	return true
}

func (s *BoardService) snapshotLocked(label string) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        uuid.New().String(),
		Label:     label,
		Board:     s.state.Board.Clone(),
		CreatedAt: s.now(),
	}
}

func (s *BoardService) pushLocked(label string) {
	s.state.History.Push(s.snapshotLocked(label))
}

// persistLocked never fails the caller's mutation; errors are logged and
// returned for Persist.
func (s *BoardService) persistLocked(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	data, err := json.Marshal(domain.SavedState{
		Board:         s.state.Board,
		SelectedColor: s.state.SelectedColor,
		SelectedSize:  s.state.SelectedSize,
	})
	if err != nil {
		s.log.Error("encode board failed", zap.Error(err))
		return fmt.Errorf("encode board: %w", err)
	}
	if bytes.Equal(data, s.lastSaved) {
		return nil
	}
	if err := s.store.SaveState(ctx, data); err != nil {
		s.log.Warn("persist board failed", zap.Error(err))
		return err
	}
	s.lastSaved = data
	return nil
}

func (s *BoardService) emitLocked(ctx context.Context) {
	s.emitter.Emit(ctx, EventBoardChanged, s.viewLocked())
}

func (s *BoardService) viewLocked() domain.BoardView {
	st := s.state
	v := domain.BoardView{
		Board:         st.Board.Clone(),
		SelectedColor: st.SelectedColor,
		SelectedSize:  st.SelectedSize,
		Mode:          st.Interaction.Mode,
		Matches:       st.Board.MatchGroups(),
		CanUndo:       st.History.Len() > 0,
		HistoryLen:    st.History.Len(),
	}
	if c, ok := st.Interaction.Selection(); ok {
		v.Selection = &c
	}
	if c, ok := st.Interaction.PendingPlacement(); ok {
		v.PendingPlacement = &c
	}
	if v.Matches == nil {
		v.Matches = []domain.MatchGroup{}
	}
	return v
}
