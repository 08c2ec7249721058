package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pions/internal/config"
	"pions/internal/logging"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logging.ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logging.ParseLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, logging.ParseLevel("chatty"))
}

func TestNew_Modes(t *testing.T) {
	dev, err := logging.New(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := logging.New(config.LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, prod.Core().Enabled(zapcore.WarnLevel))
}

func TestWailsLogger_MapsLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	w := logging.NewWailsLogger(zap.New(core))

	w.Trace("trace")
	w.Info("info")
	w.Warning("warn")
	w.Error("error")
	w.Fatal("fatal")

	entries := logs.All()
	require.Len(t, entries, 5)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[4].Level)
	assert.Equal(t, "wails", entries[0].LoggerName)
}
