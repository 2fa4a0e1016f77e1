package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// SessionContextKey holds the browsing session id in a request context.
var SessionContextKey = sessionContextKey{}

type SessionMiddleware struct {
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionMiddleware issues browsing sessions through the cookie cookieName. Cookies
// live for ttl; secure marks them HTTPS-only.
func NewSessionMiddleware(cookieName string, ttl time.Duration, secure bool) *SessionMiddleware {

	return &SessionMiddleware{cookieName: cookieName, ttl: ttl, secure: secure}

}

// Attach resolves the session of the request, issuing a new id when the cookie is missing
// or does not hold a valid id, and refreshes the cookie expiry.
func (m *SessionMiddleware) Attach(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = id.String()
			} else {
				logger.Warn("Discarding malformed session cookie", slog.String("value", cookie.Value))
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			logger.Info("Issued new session", slog.String("session_id", sessionID))
		}

		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(m.ttl.Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)

		requestScopedLogger := logger.With(slog.String("session_id", sessionID))
		ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// SessionFromContext returns the session id set by Attach, or "".
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionContextKey).(string)

	return id
}
