package models

import "portfolio/internal/domain/models/content"

// Theme is the visitor's color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	DefaultLocale = content.LocaleVI
	DefaultTheme  = ThemeDark
)

// Preference kinds accepted by the toggle endpoint.
const (
	PreferenceLocale = "locale"
	PreferenceTheme  = "theme"
)

// Preferences are the visitor's display settings, kept client-side in cookies.
type Preferences struct {
	Locale content.Locale `json:"locale"`
	Theme  Theme          `json:"theme"`
}

// ToggleLocale returns the other locale.
func ToggleLocale(l content.Locale) content.Locale {
	if l == content.LocaleVI {
		return content.LocaleEN
	}
	return content.LocaleVI
}

// ToggleTheme returns the other theme.
func ToggleTheme(t Theme) Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
