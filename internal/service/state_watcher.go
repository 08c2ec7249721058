package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ─────────────────────────────────────────────────────────────
// StateWatcher: reloads the board when another process writes it
// ─────────────────────────────────────────────────────────────
//
// The standalone MCP server (`pions mcp`) shares the SQLite file with the
// GUI. StateWatcher watches that file (and its -wal/-shm companions) and
// asks the board to Reload once writes settle. Our own writes are
// recognised by Reload and ignored.

const defaultSettle = 300 * time.Millisecond

// StateWatcher watches the local database file for external writes.
type StateWatcher struct {
	board  *BoardService
	path   string
	settle time.Duration
	log    *zap.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	timer   *time.Timer
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewStateWatcher(board *BoardService, dbPath string, log *zap.Logger) *StateWatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &StateWatcher{
		board:  board,
		path:   dbPath,
		settle: defaultSettle,
		log:    log.Named("watcher"),
	}
}

// SetSettle changes the quiet period before a reload. Call before Start.
func (w *StateWatcher) SetSettle(d time.Duration) {
	w.settle = d
}

// Start begins watching. It returns once the watch is registered.
func (w *StateWatcher) Start(ctx context.Context) error {
	absPath, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watch: resolve path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	// fsnotify watches directories; events are filtered by file name
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(absPath), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.mu.Lock()
	w.path = absPath
	w.watcher = watcher
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	go w.loop(ctx, watcher, filepath.Base(absPath), done)
	w.log.Info("watching board file", zap.String("path", absPath))
	return nil
}

// Stop ends the watch loop. Safe to call when not started.
func (w *StateWatcher) Stop() {
	w.mu.Lock()
	watcher, cancel, done := w.watcher, w.cancel, w.done
	w.watcher, w.cancel = nil, nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if watcher == nil {
		return
	}
	cancel()
	_ = watcher.Close()
	<-done
}

func (w *StateWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher, base string, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.schedule(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule debounces bursts of writes (SQLite touches the db and its WAL).
func (w *StateWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.settle, func() {
		if ctx.Err() != nil {
			return
		}
		changed, err := w.board.Reload(ctx)
		if err != nil {
			w.log.Warn("reload failed", zap.Error(err))
			return
		}
		if changed {
			w.log.Info("board changed on disk, reloaded")
		}
	})
}
