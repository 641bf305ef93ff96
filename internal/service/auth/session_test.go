package auth

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/auth"
	"portfolio/internal/domain"
	"portfolio/internal/domain/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSessionService(t *testing.T, password string) *SessionService {
	t.Helper()
	signer, err := auth.NewSessionVerifier([]byte("test-secret-test-secret-test-sec"), testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return NewSessionService(password, signer, 2*time.Hour, testLogger())
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		password   string
		wantErr    bool
	}{
		{name: "correct password", configured: "s3cret-pass", password: "s3cret-pass"},
		{name: "wrong password", configured: "s3cret-pass", password: "s3cret-pasS", wantErr: true},
		{name: "prefix of password", configured: "s3cret-pass", password: "s3cret", wantErr: true},
		{name: "empty password", configured: "s3cret-pass", password: "", wantErr: true},
		{name: "login disabled", configured: "", password: "", wantErr: true},
		{name: "well-known default", configured: "s3cret-pass", password: "admin123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestSessionService(t, tt.configured)

			session, err := svc.Login(context.Background(), tt.password)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnauthorized) {
					t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if session.Token == "" {
				t.Fatal("empty token")
			}
		})
	}
}

func TestLogin_TokenVerifies(t *testing.T) {
	svc := newTestSessionService(t, "pw")
	issuedAt := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return issuedAt }

	session, err := svc.Login(context.Background(), "pw")
	if err != nil {
		t.Fatal(err)
	}
	if want := issuedAt.Add(2 * time.Hour); !session.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, want)
	}

	claims, err := svc.signer.VerifyToken(session.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "admin" || claims.Role != models.RoleAdmin {
		t.Errorf("unexpected claims %+v", claims)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Errorf("jti %q is not a uuid", claims.ID)
	}

	second, _ := svc.Login(context.Background(), "pw")
	secondClaims, _ := svc.signer.VerifyToken(second.Token)
	if secondClaims.ID == claims.ID {
		t.Error("sessions share a jti")
	}
}

func TestVerify_ExpiredSession(t *testing.T) {
	svc := newTestSessionService(t, "pw")
	svc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }

	session, err := svc.Login(context.Background(), "pw")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.signer.VerifyToken(session.Token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify() error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveSecret(t *testing.T) {
	configured, err := ResolveSecret("from-env", testLogger())
	if err != nil || string(configured) != "from-env" {
		t.Fatalf("ResolveSecret() = %q, %v", configured, err)
	}

	a, err := ResolveSecret("", testLogger())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := ResolveSecret("", testLogger())
	if len(a) != 32 {
		t.Errorf("random secret length = %d, want 32", len(a))
	}
	if bytes.Equal(a, b) {
		t.Error("random secrets repeat")
	}
}
