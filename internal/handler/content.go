package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/services"
	"portfolio/internal/httputil"
)

// ContentHandler handles CV content HTTP requests
type ContentHandler struct {
	service services.ContentService
	logger  *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(service services.ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger,
	}
}

// SaveContentResponse is the body of a successful save
type SaveContentResponse struct {
	Success bool   `json:"success"`
	Version string `json:"version"`
}

// GetContent returns the current document
// GET /content
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	view := h.service.GetContent(r.Context())

	w.Header().Set("Cache-Control", "no-cache")
	if view.Version != "" {
		w.Header().Set("ETag", formatETag(view.Version))
	}
	if view.Fallback {
		w.Header().Set("X-Content-Source", "default")
	}

	httputil.RespondJSON(w, http.StatusOK, view.Document)
}

// SaveContent replaces the whole document
// POST /content
func (h *ContentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	raw, err := httputil.ReadBody(w, r, config.MaxContentBytes)
	if err != nil {
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge, "content exceeds the size limit")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expected := parseIfMatch(r.Header.Get("If-Match"))

	stored, err := h.service.SaveContent(r.Context(), raw, expected)
	if err != nil {
		handleError(w, err)
		return
	}

	if claims := httputil.GetClaims(r); claims != nil {
		h.logger.Info("content replaced", "version", stored.Version, "session_id", claims.ID)
	}

	w.Header().Set("ETag", formatETag(stored.Version))
	httputil.RespondJSON(w, http.StatusOK, SaveContentResponse{
		Success: true,
		Version: stored.Version,
	})
}

// GetSkills returns the skills, optionally filtered by category
// GET /content/skills?category=
func (h *ContentHandler) GetSkills(w http.ResponseWriter, r *http.Request) {
	category := content.SkillCategory(r.URL.Query().Get("category"))

	view, err := h.service.Skills(r.Context(), category)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// GetSummary returns experience and project totals
// GET /content/summary?locale=
func (h *ContentHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	locale, err := requestLocale(r)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, h.service.Summary(r.Context(), locale))
}

// requestLocale takes the locale from the query, then the locale cookie,
// then the default. An unsupported query value is an error; an unsupported
// cookie value is ignored.
func requestLocale(r *http.Request) (content.Locale, error) {
	if q := r.URL.Query().Get("locale"); q != "" {
		locale, ok := content.ParseLocale(q)
		if !ok {
			return "", &domain.ValidationError{
				Message: "unsupported locale",
				Fields:  map[string]string{"locale": "must be vi or en"},
			}
		}
		return locale, nil
	}
	if cookie, err := r.Cookie(models.PreferenceLocale); err == nil {
		if locale, ok := content.ParseLocale(cookie.Value); ok {
			return locale, nil
		}
	}
	return models.DefaultLocale, nil
}

func formatETag(version string) string {
	return `"` + version + `"`
}

// parseIfMatch returns the version named by an If-Match header. "*" and an
// absent header both mean an unconditional write.
func parseIfMatch(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || header == "*" {
		return ""
	}
	// Only the first tag is honored; the document has a single version
	if first, _, found := strings.Cut(header, ","); found {
		header = strings.TrimSpace(first)
	}
	header = strings.TrimPrefix(header, "W/")
	return strings.Trim(header, `"`)
}
