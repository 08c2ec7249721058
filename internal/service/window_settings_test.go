package service_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pions/internal/service"
	"pions/internal/storage"
)

func TestWindowSettings_Defaults(t *testing.T) {
	nilStore := service.NewWindowSettingsService(nil)
	size := nilStore.LoadWindowSize()
	assert.Equal(t, service.WindowSize{Width: service.DefaultWindowWidth, Height: service.DefaultWindowHeight}, size)
	assert.Error(t, nilStore.SaveWindowSize(1000, 800))
}

func TestWindowSettings_RoundTrip(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "pions.db"))
	require.NoError(t, err)
	defer db.Close()

	s := service.NewWindowSettingsService(storage.NewSettingsStore(db))
	assert.Equal(t, service.DefaultWindowWidth, s.LoadWindowSize().Width)

	require.NoError(t, s.SaveWindowSize(1200, 900))
	assert.Equal(t, service.WindowSize{Width: 1200, Height: 900}, s.LoadWindowSize())
}

func TestWindowSettings_TooSmallFallsBack(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "pions.db"))
	require.NoError(t, err)
	defer db.Close()

	s := service.NewWindowSettingsService(storage.NewSettingsStore(db))
	require.NoError(t, s.SaveWindowSize(200, 100))
	assert.Equal(t, service.WindowSize{Width: service.DefaultWindowWidth, Height: service.DefaultWindowHeight}, s.LoadWindowSize())
}
