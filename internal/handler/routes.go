package handler

import (
	"net/http"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/domain"
	"github.com/dysobo/niuzi-assistant/internal/service"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth    *service.AuthService
	Records *service.RecordService
	Stats   *service.StatsService
	DB      domain.Database

	// AuthLimiter throttles register and login per client IP. Nil disables it.
	AuthLimiter  *service.RateLimiter
	CookieSecure bool
	LiveInterval time.Duration
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, s Services) {
	authHandler := NewAuthHandler(s.Auth, s.CookieSecure)
	recordHandler := NewRecordHandler(s.Records)
	statsHandler := NewStatsHandler(s.Stats)
	liveHandler := NewLiveHandler(s.Stats, s.LiveInterval)

	requireAuth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(s.Auth, h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		if s.AuthLimiter == nil {
			return h
		}
		return RateLimit(s.AuthLimiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /api/health", HandleHealth(s.DB))
	mux.Handle("GET /{$}", OptionalAuth(s.Auth, http.HandlerFunc(HandleHome)))

	mux.Handle("POST /api/auth/register", limited(authHandler.HandleRegister))
	mux.Handle("POST /api/auth/login", limited(authHandler.HandleLogin))
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", requireAuth(authHandler.HandleMe))

	mux.Handle("POST /api/records/start", requireAuth(recordHandler.HandleStart))
	mux.Handle("POST /api/records/{id}/end", requireAuth(recordHandler.HandleEnd))
	mux.Handle("GET /api/records/current", requireAuth(recordHandler.HandleCurrent))
	mux.Handle("GET /api/records", requireAuth(recordHandler.HandleList))
	mux.Handle("DELETE /api/records/{id}", requireAuth(recordHandler.HandleDelete))

	mux.Handle("GET /api/records/stats", requireAuth(statsHandler.HandleSummary))
	mux.Handle("GET /api/records/stats/daily", requireAuth(statsHandler.HandleDaily))
	mux.Handle("GET /api/records/achievements", requireAuth(statsHandler.HandleAchievements))
	mux.Handle("GET /api/records/live", requireAuth(liveHandler.HandleLive))
}
