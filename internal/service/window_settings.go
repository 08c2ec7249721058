package service

import (
	"fmt"

	"pions/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Window Size Persistence
// ─────────────────────────────────────────────────────────────
//
// Saves and restores the main window size between sessions, stored in
// the app_settings table of the local SQLite file.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

const (
	settingWindowWidth  = "window_width"
	settingWindowHeight = "window_height"

	DefaultWindowWidth  = 900
	DefaultWindowHeight = 760
	MinWindowWidth      = 480
	MinWindowHeight     = 600
)

// WindowSettingsService persists window size between sessions.
type WindowSettingsService struct {
	settings *storage.SettingsStore
}

func NewWindowSettingsService(settings *storage.SettingsStore) *WindowSettingsService {
	return &WindowSettingsService{settings: settings}
}

// LoadWindowSize returns the saved window dimensions, or defaults when
// nothing usable was saved.
func (s *WindowSettingsService) LoadWindowSize() WindowSize {
	if s.settings == nil {
		return WindowSize{Width: DefaultWindowWidth, Height: DefaultWindowHeight}
	}
	w := s.settings.GetInt(settingWindowWidth, DefaultWindowWidth)
	h := s.settings.GetInt(settingWindowHeight, DefaultWindowHeight)
	if w < MinWindowWidth {
		w = DefaultWindowWidth
	}
	if h < MinWindowHeight {
		h = DefaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *WindowSettingsService) SaveWindowSize(width, height int) error {
	if s.settings == nil {
		return fmt.Errorf("window settings: no store")
	}
	if err := s.settings.SetInt(settingWindowWidth, width); err != nil {
		return err
	}
	return s.settings.SetInt(settingWindowHeight, height)
}
