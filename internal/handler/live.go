package handler

import (
	"log/slog"
	"net/http"
	"time"

	datastar "github.com/starfederation/datastar-go/datastar"

	"github.com/dysobo/niuzi-assistant/internal/service"
	"github.com/dysobo/niuzi-assistant/internal/stats"
	"github.com/dysobo/niuzi-assistant/internal/view"
)

// LiveHandler streams the user's stats to the dashboard over SSE.
type LiveHandler struct {
	stats    *service.StatsService
	interval time.Duration
}

// NewLiveHandler creates a LiveHandler that refreshes every interval.
func NewLiveHandler(stats *service.StatsService, interval time.Duration) *LiveHandler {
	return &LiveHandler{stats: stats, interval: interval}
}

type liveSignals struct {
	Stats StatsDTO `json:"stats"`
}

// HandleLive pushes a snapshot right away and then one per interval until
// the client goes away.
// GET /api/records/live
func (h *LiveHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	sse := datastar.NewSSE(w, r)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		report, err := h.stats.Report(r.Context(), user.ID, stats.DefaultDailyWindow)
		if err != nil {
			if r.Context().Err() == nil {
				slog.Error("live stats report", "error", err, "user_id", user.ID)
			}
			return
		}
		if err := h.push(sse, report); err != nil {
			slog.Debug("live stats client gone", "error", err, "user_id", user.ID)
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *LiveHandler) push(sse *datastar.ServerSentEventGenerator, report stats.Report) error {
	if err := sse.MarshalAndPatchSignals(liveSignals{Stats: toStatsDTO(report.Summary)}); err != nil {
		return err
	}
	if err := sse.PatchElementTempl(view.Summary(report.Summary), datastar.WithSelectorID(view.SummaryID)); err != nil {
		return err
	}
	return sse.PatchElementTempl(view.Achievements(report.Achievements), datastar.WithSelectorID(view.AchievementsID))
}
