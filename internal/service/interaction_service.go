package service

import (
	"context"

	"go.uber.org/zap"

	"pions/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Interaction Service: selection / move / placement state machine
// ─────────────────────────────────────────────────────────────
//
//	Idle ──click occupied──▶ CellSelected ──chooseMove──▶ AwaitingMove
//	  │                          │  ▲                          │
//	  │                  chooseDelete / cancel /         click empty (move)
//	  │                      click same cell                 / cancel
//	  ▼                          ▼  │                          ▼
//	AwaitingPlacement ──chooseToken / cancel──▶ Idle ◀─────────┘
//
// Intents that make no sense in the current state are ignored. Every
// method returns the resulting interaction state.

// InteractionService turns renderer intents into board operations.
type InteractionService struct {
	board *BoardService
}

func NewInteractionService(board *BoardService) *InteractionService {
	return &InteractionService{board: board}
}

// ClickCell handles a click or tap on a cell.
func (s *InteractionService) ClickCell(ctx context.Context, at domain.Coord) (domain.Interaction, error) {
	if err := at.Check(); err != nil {
		return s.board.Interaction(), err
	}
	return s.transition(ctx, func(st *domain.AppState) bool {
		cur := st.Interaction
		occupied := st.Board.Occupied(at)

		if cur.Mode == domain.ModeAwaitingMove {
			if occupied {
				// can't stack tokens; keep waiting for an empty cell
				return false
			}
			return s.board.moveLocked(ctx, cur.Cell, at)
		}

		switch {
		case occupied && cur.Mode == domain.ModeCellSelected && cur.Cell == at:
			st.Interaction = domain.Idle
		case occupied:
			st.Interaction = domain.Interaction{Mode: domain.ModeCellSelected, Cell: at}
		default:
			st.Interaction = domain.Interaction{Mode: domain.ModeAwaitingPlacement, Cell: at}
		}
		return st.Interaction != cur
	}), nil
}

// ChooseMove arms move mode for the selected cell.
func (s *InteractionService) ChooseMove(ctx context.Context) domain.Interaction {
	return s.transition(ctx, func(st *domain.AppState) bool {
		if st.Interaction.Mode != domain.ModeCellSelected {
			return false
		}
		st.Interaction.Mode = domain.ModeAwaitingMove
		return true
	})
}

// ChooseDelete removes the selected token.
func (s *InteractionService) ChooseDelete(ctx context.Context) domain.Interaction {
	return s.transition(ctx, func(st *domain.AppState) bool {
		if st.Interaction.Mode != domain.ModeCellSelected {
			return false
		}
		at := st.Interaction.Cell
		if !s.board.removeLocked(ctx, at) {
			// stale selection: the cell was already emptied
			st.Interaction = domain.Idle
		}
		return true
	})
}

// ChooseToken places t on the cell awaiting placement.
func (s *InteractionService) ChooseToken(ctx context.Context, t domain.Token) domain.Interaction {
	return s.transition(ctx, func(st *domain.AppState) bool {
		if st.Interaction.Mode != domain.ModeAwaitingPlacement {
			return false
		}
		s.board.placeLocked(ctx, st.Interaction.Cell, t)
		return true
	})
}

// ChooseSelectedToken places a token built from the preferred color and
// size on the cell awaiting placement.
func (s *InteractionService) ChooseSelectedToken(ctx context.Context) domain.Interaction {
	return s.transition(ctx, func(st *domain.AppState) bool {
		if st.Interaction.Mode != domain.ModeAwaitingPlacement {
			return false
		}
		t := domain.Token{Color: st.SelectedColor, Size: st.SelectedSize}
		s.board.placeLocked(ctx, st.Interaction.Cell, t)
		return true
	})
}

// Cancel returns to Idle from any state.
func (s *InteractionService) Cancel(ctx context.Context) domain.Interaction {
	return s.transition(ctx, func(st *domain.AppState) bool {
		if st.Interaction.Mode == domain.ModeIdle {
			return false
		}
		st.Interaction = domain.Idle
		return true
	})
}

// transition runs fn under the board lock and emits board:changed when
// fn reports a change.
func (s *InteractionService) transition(ctx context.Context, fn func(st *domain.AppState) bool) domain.Interaction {
	b := s.board
	b.mu.Lock()
	defer b.mu.Unlock()

	before := b.state.Interaction
	if fn(b.state) {
		b.log.Debug("interaction",
			zap.String("from", string(before.Mode)),
			zap.String("to", string(b.state.Interaction.Mode)),
			zap.Stringer("cell", b.state.Interaction.Cell),
		)
		b.emitLocked(ctx)
	}
	return b.state.Interaction
}
