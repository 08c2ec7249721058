package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ─────────────────────────────────────────────────────────────
// Autosave: periodic persistence tick
// ─────────────────────────────────────────────────────────────

// AutosaveService persists the board on a cron schedule ("@every 5s" by
// default) and once more on Stop.
type AutosaveService struct {
	board *BoardService
	spec  string
	log   *zap.Logger
	guard tickGuard

	mu    sync.Mutex
	sched *cron.Cron
}

func NewAutosaveService(board *BoardService, spec string, log *zap.Logger) *AutosaveService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AutosaveService{
		board: board,
		spec:  spec,
		log:   log.Named("autosave"),
		guard: newTickGuard(),
	}
}

// Start schedules the tick. Calling Start twice restarts the schedule.
func (s *AutosaveService) Start(ctx context.Context) error {
	s.halt()

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() { s.Tick(ctx) }); err != nil {
		return fmt.Errorf("autosave: invalid schedule %q: %w", s.spec, err)
	}
	c.Start()

	s.mu.Lock()
	s.sched = c
	s.mu.Unlock()
	s.log.Info("autosave scheduled", zap.String("spec", s.spec))
	return nil
}

// Tick persists once. Overlapping ticks are dropped.
func (s *AutosaveService) Tick(ctx context.Context) {
	if !s.guard.tryEnter() {
		s.log.Debug("autosave still running, tick skipped")
		return
	}
	defer s.guard.leave()

	if err := s.board.Persist(ctx); err != nil {
		s.log.Warn("autosave failed", zap.Error(err))
	}
}

// Stop halts the schedule, waits for a running tick and flushes the
// board one last time. Safe to call repeatedly.
func (s *AutosaveService) Stop(ctx context.Context) {
	s.halt()
	s.guard.wait(ctx)
	if err := s.board.Persist(ctx); err != nil {
		s.log.Warn("final flush failed", zap.Error(err))
	}
}

func (s *AutosaveService) halt() {
	s.mu.Lock()
	c := s.sched
	s.sched = nil
	s.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// tickGuard admits one tick at a time. A tick that finds it taken is
// dropped, not queued.
type tickGuard chan struct{}

func newTickGuard() tickGuard { return make(tickGuard, 1) }

func (g tickGuard) tryEnter() bool {
	select {
	case g <- struct{}{}:
		return true
	default:
		return false
	}
}

func (g tickGuard) leave() { <-g }

// wait returns once no tick is running, or when ctx is done.
func (g tickGuard) wait(ctx context.Context) {
	select {
	case g <- struct{}{}:
		<-g
	case <-ctx.Done():
	}
}
