package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dysobo/niuzi-assistant/internal/service"
	"github.com/dysobo/niuzi-assistant/internal/stats"
)

// StatsHandler serves the derived statistics of the authenticated user.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleSummary returns the headline statistics.
// GET /api/records/stats
func (h *StatsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	summary, err := h.stats.Summary(r.Context(), user.ID)
	if err != nil {
		slog.Error("compute stats", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toStatsDTO(summary))
}

// HandleDaily returns the trailing per-day series, oldest first.
// GET /api/records/stats/daily?days=N
func (h *StatsHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	days := stats.DefaultDailyWindow
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "days must be an integer.")
			return
		}
		days = parsed
	}

	buckets, err := h.stats.Daily(r.Context(), user.ID, days)
	if err != nil {
		slog.Error("compute daily stats", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toDailyDTOs(buckets))
}

// HandleAchievements returns every achievement in catalog order.
// GET /api/records/achievements
func (h *StatsHandler) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	results, err := h.stats.Achievements(r.Context(), user.ID)
	if err != nil {
		slog.Error("evaluate achievements", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, toAchievementDTOs(results))
}
