package api

import (
	"net/http"

	"go.uber.org/zap"
)

// corsMiddleware sets the CORS headers on every response before any other
// branching and short-circuits OPTIONS with an empty 200, so preflight
// succeeds even when the database is not configured.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware is the fatal-per-request boundary: a panic anywhere in
// handling is logged and answered with the generic 500 envelope instead of
// taking the connection down.
func recoverMiddleware(next http.Handler, logger *zap.SugaredLogger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if logger != nil {
					logger.Errorw("panic while handling request",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
					)
				}
				writeError(w, http.StatusInternalServerError, "Internal server error", logger)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
