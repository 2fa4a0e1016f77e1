package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/aaravmahajanofficial/catalog-browser/internal/errors"
	"github.com/aaravmahajanofficial/catalog-browser/internal/utils/response"
)

// Recover turns a panicking handler into a 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			// let the server abort the response as it would without this middleware
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			LoggerFromContext(r.Context()).Error("Panic recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)

			response.Error(w, errors.InternalError("An unexpected error occurred"))
		}()

		next.ServeHTTP(w, r)
	})
}
