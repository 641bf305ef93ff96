package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/config"
	"portfolio/internal/domain/models/content"
	"portfolio/internal/domain/repositories"
	"portfolio/internal/events"
	"portfolio/internal/repository/file"
	contentService "portfolio/internal/service/content"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// brokenRepository fails every call
type brokenRepository struct{}

func (brokenRepository) Load(context.Context) (*repositories.StoredContent, error) {
	return nil, errors.New("disk on fire")
}

func (brokenRepository) Save(context.Context, *content.Document, string) (*repositories.StoredContent, error) {
	return nil, errors.New("disk on fire")
}

func (brokenRepository) Close() error { return nil }

func newContentHandler(t *testing.T, repo repositories.ContentRepository) *ContentHandler {
	t.Helper()
	if repo == nil {
		repo = file.NewContentRepository(filepath.Join(t.TempDir(), "cv-data.json"), testLogger())
	}
	svc := contentService.NewService(repo, events.NopPublisher{}, testLogger())
	return NewContentHandler(svc, testLogger())
}

func defaultBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(content.Default())
	if err != nil {
		t.Fatal(err)
	}
	return body
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestGetContent_EmptyStoreServesDefault(t *testing.T) {
	h := newContentHandler(t, nil)

	rec := httptest.NewRecorder()
	h.GetContent(rec, httptest.NewRequest(http.MethodGet, "/content", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Source"); got != "default" {
		t.Errorf("X-Content-Source = %q, want default", got)
	}
	if got := rec.Header().Get("ETag"); got != "" {
		t.Errorf("ETag = %q, want none for the built-in default", got)
	}

	var doc content.Document
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Personal.Email != content.Default().Personal.Email {
		t.Errorf("email = %q", doc.Personal.Email)
	}
}

func TestGetContent_StorageFailureServesDefault(t *testing.T) {
	h := newContentHandler(t, brokenRepository{})

	rec := httptest.NewRecorder()
	h.GetContent(rec, httptest.NewRequest(http.MethodGet, "/content", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Content-Source"); got != "default" {
		t.Errorf("X-Content-Source = %q, want default", got)
	}
}

func TestSaveContent_ThenGet(t *testing.T) {
	h := newContentHandler(t, nil)

	rec := httptest.NewRecorder()
	h.SaveContent(rec, httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(defaultBody(t))))
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}

	var saved SaveContentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if !saved.Success || saved.Version == "" {
		t.Fatalf("save response = %+v", saved)
	}
	if got, want := rec.Header().Get("ETag"), `"`+saved.Version+`"`; got != want {
		t.Errorf("ETag = %q, want %q", got, want)
	}

	rec = httptest.NewRecorder()
	h.GetContent(rec, httptest.NewRequest(http.MethodGet, "/content", nil))
	if got, want := rec.Header().Get("ETag"), `"`+saved.Version+`"`; got != want {
		t.Errorf("GET ETag = %q, want %q", got, want)
	}
	if got := rec.Header().Get("X-Content-Source"); got != "" {
		t.Errorf("X-Content-Source = %q after save", got)
	}
}

func TestSaveContent_Errors(t *testing.T) {
	valid := defaultBody(t)
	invalid := bytes.Replace(valid, []byte(`"level":`), []byte(`"level":99,"x":`), 1)

	tests := []struct {
		name      string
		repo      repositories.ContentRepository
		body      []byte
		ifMatch   string
		wantCode  int
		wantError string
		wantField string
	}{
		{
			name:     "malformed JSON",
			body:     []byte(`{"personal":`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "schema violation",
			body:      invalid,
			wantCode:  http.StatusBadRequest,
			wantError: "content does not match the document schema",
		},
		{
			name:     "too large",
			body:     bytes.Repeat([]byte(" "), config.MaxContentBytes+1),
			wantCode: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "stale version",
			body:     valid,
			ifMatch:  `"not-the-current-version"`,
			wantCode: http.StatusPreconditionFailed,
		},
		{
			name:      "storage failure",
			repo:      brokenRepository{},
			body:      valid,
			wantCode:  http.StatusInternalServerError,
			wantError: "Failed to save",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newContentHandler(t, tt.repo)

			req := httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(tt.body))
			if tt.ifMatch != "" {
				req.Header.Set("If-Match", tt.ifMatch)
			}
			rec := httptest.NewRecorder()
			h.SaveContent(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			body := decodeBody(t, rec)
			if _, ok := body["error"].(string); !ok {
				t.Errorf("response has no error member: %v", body)
			}
			if tt.wantError != "" && body["error"] != tt.wantError {
				t.Errorf("error = %v, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestSaveContent_ValidationFields(t *testing.T) {
	h := newContentHandler(t, nil)

	doc := content.Default()
	doc.Personal.Email = "not-an-email"
	body, _ := json.Marshal(doc)

	rec := httptest.NewRecorder()
	h.SaveContent(rec, httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	fields, ok := decodeBody(t, rec)["fields"].(map[string]interface{})
	if !ok {
		t.Fatal("response has no fields member")
	}
	if _, ok := fields["personal.email"]; !ok {
		t.Errorf("fields = %v, want personal.email", fields)
	}
}

func TestSaveContent_IfMatchRoundTrip(t *testing.T) {
	h := newContentHandler(t, nil)
	body := defaultBody(t)

	rec := httptest.NewRecorder()
	h.SaveContent(rec, httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body)))
	etag := rec.Header().Get("ETag")

	for _, header := range []string{etag, "W/" + etag, "*", ""} {
		req := httptest.NewRequest(http.MethodPost, "/content", bytes.NewReader(body))
		if header != "" {
			req.Header.Set("If-Match", header)
		}
		rec := httptest.NewRecorder()
		h.SaveContent(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("If-Match %q: status = %d: %s", header, rec.Code, rec.Body.String())
		}
	}
}

func TestParseIfMatch(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: ""},
		{header: "*", want: ""},
		{header: `"abc"`, want: "abc"},
		{header: `W/"abc"`, want: "abc"},
		{header: ` "abc" , "def"`, want: "abc"},
		{header: "abc", want: "abc"},
	}

	for _, tt := range tests {
		if got := parseIfMatch(tt.header); got != tt.want {
			t.Errorf("parseIfMatch(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestGetSkills(t *testing.T) {
	h := newContentHandler(t, nil)

	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{name: "all skills", query: "", wantCode: http.StatusOK},
		{name: "one category", query: "?category=framework", wantCode: http.StatusOK},
		{name: "unknown category", query: "?category=cooking", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.GetSkills(rec, httptest.NewRequest(http.MethodGet, "/content/skills"+tt.query, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			body := decodeBody(t, rec)
			if _, ok := body["categories"].([]interface{}); !ok {
				t.Errorf("no categories in %v", body)
			}
			if _, ok := body["skills"].([]interface{}); !ok {
				t.Errorf("no skills in %v", body)
			}
		})
	}
}

func TestGetSummary_Locale(t *testing.T) {
	h := newContentHandler(t, nil)

	tests := []struct {
		name       string
		query      string
		cookie     string
		wantCode   int
		wantLocale string
	}{
		{name: "default", wantCode: http.StatusOK, wantLocale: "vi"},
		{name: "query", query: "?locale=en", wantCode: http.StatusOK, wantLocale: "en"},
		{name: "cookie", cookie: "en", wantCode: http.StatusOK, wantLocale: "en"},
		{name: "query beats cookie", query: "?locale=vi", cookie: "en", wantCode: http.StatusOK, wantLocale: "vi"},
		{name: "bad cookie ignored", cookie: "fr", wantCode: http.StatusOK, wantLocale: "vi"},
		{name: "bad query", query: "?locale=fr", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/content/summary"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "locale", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			h.GetSummary(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			body := decodeBody(t, rec)
			if body["locale"] != tt.wantLocale {
				t.Errorf("locale = %v, want %s", body["locale"], tt.wantLocale)
			}
			if d, _ := body["totalDuration"].(string); strings.TrimSpace(d) == "" {
				t.Error("empty totalDuration")
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK || decodeBody(t, rec)["status"] != "ok" {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}
