package handler

import (
	"log/slog"
	"net/http"

	"portfolio/internal/domain/models"
	"portfolio/internal/domain/services"
	"portfolio/internal/httputil"
)

// preferenceCookieMaxAge keeps visitor preferences for one year
const preferenceCookieMaxAge = 365 * 24 * 60 * 60

// PreferencesHandler handles visitor locale and theme HTTP requests
type PreferencesHandler struct {
	service services.PreferencesService
	logger  *slog.Logger
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(service services.PreferencesService, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		service: service,
		logger:  logger,
	}
}

// GetPreferences returns the visitor's preferences
// GET /preferences
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.current(r))
}

// TogglePreference flips the locale or the theme and stores it in a cookie
// POST /preferences/{kind}/toggle
func (h *PreferencesHandler) TogglePreference(w http.ResponseWriter, r *http.Request) {
	kind := r.PathValue("kind")

	prefs, err := h.service.Toggle(h.current(r), kind)
	if err != nil {
		handleError(w, err)
		return
	}

	value := string(prefs.Locale)
	if kind == models.PreferenceTheme {
		value = string(prefs.Theme)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     kind,
		Value:    value,
		Path:     "/",
		MaxAge:   preferenceCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

func (h *PreferencesHandler) current(r *http.Request) models.Preferences {
	return h.service.Resolve(cookieValue(r, models.PreferenceLocale), cookieValue(r, models.PreferenceTheme))
}

func cookieValue(r *http.Request, name string) string {
	if c, err := r.Cookie(name); err == nil {
		return c.Value
	}
	return ""
}
