package main

import (
	"embed"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"go.uber.org/zap"

	pionsApp "pions/internal/app"
	"pions/internal/config"
	"pions/internal/logging"
	"pions/internal/service"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	log := logging.NewDefault()
	cfg, err := config.Load()
	if err != nil {
		log.Warn("invalid configuration, using defaults", zap.Error(err))
		cfg = config.Default()
	}
	if l, err := logging.New(cfg.Log); err == nil {
		log = l
	}
	defer log.Sync()

	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		if err := pionsApp.ServeMCP(cfg, log); err != nil {
			log.Error("mcp server stopped", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	app, err := pionsApp.New(cfg, log)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		os.Exit(1)
	}
	size := app.WindowSize()

	// macOS needs an Edit menu for Cmd+C/V/X/A to reach the WebView
	appMenu := menu.NewMenu()
	appMenu.Append(menu.EditMenu())

	err = wails.Run(&options.App{
		Title:     "Pions",
		Width:     size.Width,
		Height:    size.Height,
		MinWidth:  service.MinWindowWidth,
		MinHeight: service.MinWindowHeight,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 245, G: 240, B: 230, A: 1},
		Menu:             appMenu,
		Logger:           logging.NewWailsLogger(log),
		OnStartup:        app.Startup,
		OnBeforeClose:    app.BeforeClose,
		OnShutdown:       app.Shutdown,
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			TitleBar: mac.TitleBarHiddenInset(),
			About: &mac.AboutInfo{
				Title:   "Pions",
				Message: "A 6x4 board of colored pions",
			},
		},
	})

	if err != nil {
		log.Error("wails run failed", zap.Error(err))
	}
}
