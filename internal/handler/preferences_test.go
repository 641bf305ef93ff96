package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/domain/models"
	"portfolio/internal/service"
)

func newPreferencesHandler() *PreferencesHandler {
	return NewPreferencesHandler(service.NewPreferencesService(testLogger()), testLogger())
}

func TestGetPreferences(t *testing.T) {
	tests := []struct {
		name    string
		cookies map[string]string
		want    models.Preferences
	}{
		{name: "defaults", want: models.Preferences{Locale: "vi", Theme: "dark"}},
		{name: "from cookies", cookies: map[string]string{"locale": "en", "theme": "light"}, want: models.Preferences{Locale: "en", Theme: "light"}},
		{name: "invalid cookies", cookies: map[string]string{"locale": "de", "theme": "sepia"}, want: models.Preferences{Locale: "vi", Theme: "dark"}},
	}

	h := newPreferencesHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/preferences", nil)
			for name, value := range tt.cookies {
				req.AddCookie(&http.Cookie{Name: name, Value: value})
			}
			rec := httptest.NewRecorder()
			h.GetPreferences(rec, req)

			var got models.Preferences
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("preferences = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTogglePreference(t *testing.T) {
	tests := []struct {
		name       string
		kind       string
		cookie     *http.Cookie
		wantCode   int
		wantCookie string
	}{
		{name: "locale from default", kind: "locale", wantCode: http.StatusOK, wantCookie: "en"},
		{name: "locale back", kind: "locale", cookie: &http.Cookie{Name: "locale", Value: "en"}, wantCode: http.StatusOK, wantCookie: "vi"},
		{name: "theme from default", kind: "theme", wantCode: http.StatusOK, wantCookie: "light"},
		{name: "unknown kind", kind: "font", wantCode: http.StatusBadRequest},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /preferences/{kind}/toggle", newPreferencesHandler().TogglePreference)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/preferences/"+tt.kind+"/toggle", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			cookies := rec.Result().Cookies()
			if len(cookies) != 1 {
				t.Fatalf("got %d cookies, want 1", len(cookies))
			}
			c := cookies[0]
			if c.Name != tt.kind || c.Value != tt.wantCookie {
				t.Errorf("cookie %s=%s, want %s=%s", c.Name, c.Value, tt.kind, tt.wantCookie)
			}
			if c.Path != "/" || c.MaxAge != preferenceCookieMaxAge {
				t.Errorf("cookie path=%q max-age=%d", c.Path, c.MaxAge)
			}
		})
	}
}
