package httputil

import (
	"net/http"
	"strings"
)

// SessionCookieName holds the admin session token
const SessionCookieName = "admin_session"

// SessionToken extracts the admin token from the Authorization header,
// falling back to the session cookie. Returns "" when neither is present.
func SessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
