package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pions/internal/config"
	mcpserver "pions/internal/mcp"
	"pions/internal/service"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no GUI.
// It shares the board record with a running GUI, which reloads when the
// file changes. Logs go to stderr since stdout carries the protocol.
func ServeMCP(cfg *config.Config, log *zap.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := openCore(ctx, cfg, service.NopEmitter{}, log)
	if err != nil {
		return err
	}
	defer c.close()

	srv := mcpserver.New(mcpserver.Deps{Board: c.board, Log: log})
	log.Info("starting standalone MCP server", zap.String("db", c.db.Path()))
	if err := srv.ServeStdio(); err != nil {
		return err
	}
	return c.board.Persist(context.Background())
}
