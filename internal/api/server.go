package api

import (
	"net/http"

	"warriorstats/internal/service"

	"go.uber.org/zap"
)

type server struct {
	svc    *service.Service
	logger *zap.SugaredLogger
}

// NewServer builds the HTTP layer. svc may be nil when no database is
// configured; data routes then answer with a configuration error while
// health and metrics stay available.
func NewServer(svc *service.Service, logger *zap.SugaredLogger) *server {
	return &server{svc: svc, logger: logger}
}

func (s *server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metricsHandler())

	// no method pattern: the handler owns the method branching so it can
	// emit the Allow header and JSON error body on 405
	mux.HandleFunc("/api/warriors/stats", s.handleStats)

	return corsMiddleware(recoverMiddleware(metricsMiddleware(mux), s.logger))
}
