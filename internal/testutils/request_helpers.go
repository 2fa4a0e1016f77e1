package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/aaravmahajanofficial/catalog-browser/internal/api/middleware"
)

// CreateTestRequestWithSession builds a request as the session middleware would hand it
// to a handler: session id and a discarding logger in the context.
func CreateTestRequestWithSession(method, target string, body io.Reader, sessionID string) *http.Request {
	req := CreateTestRequestWithoutSession(method, target, body)

	ctx := context.WithValue(req.Context(), middleware.SessionContextKey, sessionID)

	return req.WithContext(ctx)
}

func CreateTestRequestWithoutSession(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)

	return req.WithContext(ctx)
}
