package api

import (
	"fmt"
	"net/http"
)

type statsData struct {
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// handleStats serves GET /api/warriors/stats. OPTIONS never reaches here,
// corsMiddleware answers preflight. Ordering matters: the configuration
// check runs before the method check.
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.svc == nil {
		s.logger.Errorw("stats request rejected", "reason", "database not configured")
		writeError(w, http.StatusInternalServerError, "Database not configured", s.logger)
		return
	}
	if r.Method != http.MethodGet {
		s.logger.Warnw("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method), s.logger)
		return
	}

	stats, err := s.svc.WarriorStats(r.Context())
	if err != nil {
		status, message := mapStatsError(err)
		s.logger.Errorw("stats request failed", "err", err)
		writeError(w, status, message, s.logger)
		return
	}

	byStatus := stats.ByStatus
	if byStatus == nil {
		byStatus = map[string]int{}
	}
	writeSuccess(w, statsData{
		Active:   stats.Active,
		Inactive: stats.Inactive,
		Total:    stats.Total,
		ByStatus: byStatus,
	}, s.logger)
}
