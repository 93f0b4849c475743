package store

import (
	"context"

	"sadat/internal/models"
)

// Theme returns the current theme preference.
func (s *Store) Theme(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings.Theme
}

// SetTheme sets the theme preference to light or dark.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return models.NewValidationError("Theme must be light or dark")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings.Theme = theme
	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.emit(Change{Op: OpUpdated, Entity: "settings"})
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Settings.Theme == models.ThemeDark {
		s.state.Settings.Theme = models.ThemeLight
	} else {
		s.state.Settings.Theme = models.ThemeDark
	}
	if err := s.persistLocked(ctx); err != nil {
		return "", err
	}
	s.emit(Change{Op: OpUpdated, Entity: "settings"})
	return s.state.Settings.Theme, nil
}
