package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"warriorstats/internal/storage"

	"go.uber.org/zap"
)

// Every response body is the same envelope: {"success":true,"data":...}
// on success, {"success":false,"error":"..."} on failure.

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		if logger != nil {
			logger.Errorw("failed to encode response", "err", err)
		}
	}
}

func writeSuccess(w http.ResponseWriter, data any, logger *zap.SugaredLogger) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	}, logger)
}

func writeError(w http.ResponseWriter, status int, message string, logger *zap.SugaredLogger) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	}, logger)
}

// mapStatsError translates storage stage sentinels into the client-facing
// message for that stage. Anything unrecognized stays generic; underlying
// database detail never reaches the client.
func mapStatsError(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrCountActive):
		return http.StatusInternalServerError, "Failed to fetch active warriors count"
	case errors.Is(err, storage.ErrCountInactive):
		return http.StatusInternalServerError, "Failed to fetch inactive warriors count"
	case errors.Is(err, storage.ErrCountTotal):
		return http.StatusInternalServerError, "Failed to fetch total warriors count"
	case errors.Is(err, storage.ErrStatusBreakdown):
		return http.StatusInternalServerError, "Failed to fetch warriors status breakdown"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
