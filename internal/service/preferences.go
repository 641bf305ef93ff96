package service

import (
	"fmt"
	"log/slog"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/services"
)

// PreferencesService implements the PreferencesService interface.
// Preferences live in visitor cookies; nothing is persisted server-side.
type PreferencesService struct {
	logger *slog.Logger
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(logger *slog.Logger) services.PreferencesService {
	return &PreferencesService{logger: logger}
}

// getDefaultPreferences returns the preferences of a first-time visitor
func (s *PreferencesService) getDefaultPreferences() models.Preferences {
	return models.Preferences{
		Locale: models.DefaultLocale,
		Theme:  models.DefaultTheme,
	}
}

// Resolve normalizes raw cookie values
func (s *PreferencesService) Resolve(locale, theme string) models.Preferences {
	prefs := s.getDefaultPreferences()

	if l, ok := content.ParseLocale(locale); ok {
		prefs.Locale = l
	} else if locale != "" {
		s.logger.Debug("ignoring unknown locale preference", "locale", locale)
	}

	switch models.Theme(theme) {
	case models.ThemeLight, models.ThemeDark:
		prefs.Theme = models.Theme(theme)
	default:
		if theme != "" {
			s.logger.Debug("ignoring unknown theme preference", "theme", theme)
		}
	}

	return prefs
}

// Toggle flips the preference named by kind
func (s *PreferencesService) Toggle(prefs models.Preferences, kind string) (models.Preferences, error) {
	switch kind {
	case models.PreferenceLocale:
		prefs.Locale = models.ToggleLocale(prefs.Locale)
	case models.PreferenceTheme:
		prefs.Theme = models.ToggleTheme(prefs.Theme)
	default:
		return prefs, &domain.ValidationError{
			Message: fmt.Sprintf("unknown preference %q", kind),
			Fields: map[string]string{
				"kind": fmt.Sprintf("must be %s or %s", models.PreferenceLocale, models.PreferenceTheme),
			},
		}
	}
	return prefs, nil
}
