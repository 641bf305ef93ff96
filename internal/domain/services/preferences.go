package services

import "portfolio/internal/domain/models"

// PreferencesService resolves and toggles the visitor's display preferences.
type PreferencesService interface {
	// Resolve normalizes raw cookie values, substituting defaults for
	// missing or unknown values.
	Resolve(locale, theme string) models.Preferences

	// Toggle flips one preference. kind is "locale" or "theme".
	Toggle(prefs models.Preferences, kind string) (models.Preferences, error)
}
