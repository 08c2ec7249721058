package app

import (
	"context"
	"time"

	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"pions/internal/config"
	"pions/internal/service"
)

const shutdownTimeout = 5 * time.Second

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx context.Context
	log *zap.Logger

	core        *core
	board       *service.BoardService
	interaction *service.InteractionService
	autosave    *service.AutosaveService
	watcher     *service.StateWatcher
	window      *service.WindowSettingsService

	assets  AssetNames
	confirm func(ctx context.Context) (bool, error)
}

// wailsEmitter forwards service events to the renderer.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}

// New opens storage and restores the saved board. The window size is
// available before Startup so main can size the window.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	c, err := openCore(context.Background(), cfg, wailsEmitter{}, log)
	if err != nil {
		return nil, err
	}
	a := newApp(c.board, log)
	a.core = c
	a.window = service.NewWindowSettingsService(c.settings)
	a.autosave = service.NewAutosaveService(c.board, cfg.AutosaveSpec, log)
	if c.watchesLocalFile() {
		a.watcher = service.NewStateWatcher(c.board, c.db.Path(), log)
	}
	return a, nil
}

func newApp(board *service.BoardService, log *zap.Logger) *App {
	return &App{
		ctx:         context.Background(),
		log:         log,
		board:       board,
		interaction: service.NewInteractionService(board),
		window:      service.NewWindowSettingsService(nil),
		assets:      DefaultAssetNames,
		confirm:     confirmReset,
	}
}

// WindowSize returns the window size saved by the previous session.
func (a *App) WindowSize() service.WindowSize {
	return a.window.LoadWindowSize()
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx

	if a.autosave != nil {
		if err := a.autosave.Start(ctx); err != nil {
			a.log.Error("autosave disabled", zap.Error(err))
		}
	}
	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			a.log.Warn("external change watcher disabled", zap.Error(err))
		}
	}
	a.log.Info("board editor started")
}

// BeforeClose saves the window size. It never prevents closing.
func (a *App) BeforeClose(ctx context.Context) bool {
	w, h := wailsRuntime.WindowGetSize(ctx)
	if err := a.window.SaveWindowSize(w, h); err != nil {
		a.log.Warn("save window size", zap.Error(err))
	}
	return false
}

// Shutdown flushes the board and releases storage.
func (a *App) Shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if a.autosave != nil {
		a.autosave.Stop(flushCtx)
	} else if err := a.board.Persist(flushCtx); err != nil {
		a.log.Warn("final flush failed", zap.Error(err))
	}
	if a.core != nil {
		a.core.close()
	}
	a.log.Info("board editor stopped")
	_ = a.log.Sync()
}

func confirmReset(ctx context.Context) (bool, error) {
	choice, err := wailsRuntime.MessageDialog(ctx, wailsRuntime.MessageDialogOptions{
		Type:          wailsRuntime.QuestionDialog,
		Title:         "Reset board",
		Message:       "Remove every pion from the board?",
		Buttons:       []string{"Yes", "No"},
		DefaultButton: "No",
		CancelButton:  "No",
	})
	if err != nil {
		return false, err
	}
	return choice == "Yes", nil
}
