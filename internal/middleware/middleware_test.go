package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
	"portfolio/internal/httputil"
)

type tokenVerifier map[string]*models.SessionClaims

func (v tokenVerifier) VerifyToken(token string) (*models.SessionClaims, error) {
	if claims, ok := v[token]; ok {
		return claims, nil
	}
	return nil, domain.ErrUnauthorized
}

func (v tokenVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.SessionClaims{Role: models.RoleAdmin}
	verifier := tokenVerifier{"good": admin}

	var seen *models.SessionClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetClaims(r)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireAdmin(verifier, testLogger())(next)

	tests := []struct {
		name     string
		header   string
		cookie   string
		wantCode int
	}{
		{name: "bearer token", header: "Bearer good", wantCode: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good", wantCode: http.StatusNoContent},
		{name: "session cookie", cookie: "good", wantCode: http.StatusNoContent},
		{name: "no credentials", wantCode: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer bad", wantCode: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic good", wantCode: http.StatusUnauthorized},
		{name: "header wins over cookie", header: "Bearer bad", cookie: "good", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodPost, "/content", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: httputil.SessionCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusNoContent && seen != admin {
				t.Error("claims not passed to handler")
			}
			if tt.wantCode == http.StatusUnauthorized {
				if seen != nil {
					t.Error("handler ran for rejected request")
				}
				var body map[string]interface{}
				_ = json.Unmarshal(rec.Body.Bytes(), &body)
				if body["error"] == nil {
					t.Errorf("body missing error member: %s", rec.Body.String())
				}
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/content", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
