package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RenierDuminy/CTFDA-scoring/internal/api/handler"
	"github.com/RenierDuminy/CTFDA-scoring/internal/api/middleware"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/export"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/roster"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/session"
	"github.com/RenierDuminy/CTFDA-scoring/internal/services/timer"
	"github.com/RenierDuminy/CTFDA-scoring/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger        *slog.Logger
	Manager       *session.Manager
	Gate          *session.Gate
	Store         *storage.Store
	MatchTimer    *timer.Countdown
	IntervalTimer *timer.Interval
	RosterService *roster.Service
	Submitter     *export.Submitter
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Manager, cfg.Gate, cfg.Store)
	pointsHandler := handler.NewPointsHandler(cfg.Manager)
	timersHandler := handler.NewTimersHandler(cfg.MatchTimer, cfg.IntervalTimer)
	rosterHandler := handler.NewRosterHandler(cfg.RosterService)
	exportHandler := handler.NewExportHandler(cfg.Manager, cfg.Submitter)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Session routes
	api.HandleFunc("/session", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/session/flush", sessionHandler.Flush).Methods(http.MethodPost)
	api.HandleFunc("/session/reset", sessionHandler.Reset).Methods(http.MethodPost)
	api.HandleFunc("/session/restore", sessionHandler.GetRestore).Methods(http.MethodGet)
	api.HandleFunc("/session/restore", sessionHandler.DecideRestore).Methods(http.MethodPost)
	api.HandleFunc("/session/teams", sessionHandler.SetTeams).Methods(http.MethodPatch)
	api.HandleFunc("/session/possession", sessionHandler.SetPossession).Methods(http.MethodPatch)
	api.HandleFunc("/session/clock-label", sessionHandler.SetClockLabel).Methods(http.MethodPatch)
	api.HandleFunc("/session/usage", sessionHandler.Usage).Methods(http.MethodGet)

	// Point log routes
	api.HandleFunc("/points", pointsHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/points", pointsHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/points/{id}", pointsHandler.Update).Methods(http.MethodPatch)
	api.HandleFunc("/points/{id}", pointsHandler.Delete).Methods(http.MethodDelete)

	// Timer routes
	api.HandleFunc("/timers/match", timersHandler.MatchStatus).Methods(http.MethodGet)
	api.HandleFunc("/timers/match/start", timersHandler.MatchStart).Methods(http.MethodPost)
	api.HandleFunc("/timers/match/stop", timersHandler.MatchStop).Methods(http.MethodPost)
	api.HandleFunc("/timers/match/reset", timersHandler.MatchReset).Methods(http.MethodPost)
	api.HandleFunc("/timers/interval", timersHandler.IntervalStatus).Methods(http.MethodGet)
	api.HandleFunc("/timers/interval/start", timersHandler.IntervalStart).Methods(http.MethodPost)
	api.HandleFunc("/timers/interval/stop", timersHandler.IntervalStop).Methods(http.MethodPost)
	api.HandleFunc("/timers/interval/reset", timersHandler.IntervalReset).Methods(http.MethodPost)

	// Roster routes
	api.HandleFunc("/roster", rosterHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/roster/refresh", rosterHandler.Refresh).Methods(http.MethodPost)

	// Export routes
	api.HandleFunc("/export/csv", exportHandler.DownloadCSV).Methods(http.MethodGet)
	api.HandleFunc("/export/submit", exportHandler.Submit).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
