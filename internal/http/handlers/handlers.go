package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/nba-elo-sim/internal/app/season"
	"github.com/preston-bernstein/nba-elo-sim/internal/archive"
	"github.com/preston-bernstein/nba-elo-sim/internal/domain/teams"
	"github.com/preston-bernstein/nba-elo-sim/internal/logging"
	"github.com/preston-bernstein/nba-elo-sim/internal/poller"
	"github.com/preston-bernstein/nba-elo-sim/internal/simulate"
)

// Handler serves the simulated season.
type Handler struct {
	svc      *season.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// TeamsResponse lists teams by descending rating.
type TeamsResponse struct {
	Teams []teams.Team `json:"teams"`
}

// StandingsResponse lists each conference in seed order.
type StandingsResponse struct {
	West []teams.Team `json:"west"`
	East []teams.Team `json:"east"`
}

// NewHandler constructs a Handler. statusFn may be nil when no poller runs.
func NewHandler(svc *season.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: a season has been simulated and the poller is healthy.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !h.svc.Ready() {
		writeError(w, r, nethttp.StatusServiceUnavailable, season.ErrNotReady.Error(), h.logger)
		return
	}
	if h.statusFn != nil {
		if status := h.statusFn(); !status.IsReady() {
			msg := status.LastError
			if msg == "" {
				msg = "not ready"
			}
			writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
			return
		}
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// Teams returns every team with its rating and record.
func (h *Handler) Teams(w nethttp.ResponseWriter, r *nethttp.Request) {
	list, err := h.svc.Teams()
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, TeamsResponse{Teams: list}, h.logger)
}

// TeamByCode returns one team.
func (h *Handler) TeamByCode(w nethttp.ResponseWriter, r *nethttp.Request) {
	code := chi.URLParam(r, "code")
	team, ok, err := h.svc.TeamByCode(code)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, team, h.logger)
}

// Standings returns both conferences in seed order.
func (h *Handler) Standings(w nethttp.ResponseWriter, r *nethttp.Request) {
	standings, err := h.svc.Standings()
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, StandingsResponse{
		West: standings[teams.West],
		East: standings[teams.East],
	}, h.logger)
}

// SimulatePostseason plays and archives a fresh postseason.
func (h *Handler) SimulatePostseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	run, err := h.svc.SimulatePostseason(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	loggerFromContext(r, h.logger).Info("served postseason",
		slog.String("run_id", run.ID),
		slog.String(logging.FieldTeam, run.Champion),
	)
	writeJSON(w, nethttp.StatusCreated, run, h.logger)
}

// LatestPostseason returns the most recent archived postseason.
func (h *Handler) LatestPostseason(w nethttp.ResponseWriter, r *nethttp.Request) {
	run, err := h.svc.LatestPostseason(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, nethttp.StatusOK, run, h.logger)
}

// NotFound answers unknown routes.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) writeServiceError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, season.ErrNotReady):
		writeError(w, r, nethttp.StatusServiceUnavailable, err.Error(), h.logger)
	case errors.Is(err, archive.ErrNoRuns):
		writeError(w, r, nethttp.StatusNotFound, err.Error(), h.logger)
	case errors.Is(err, simulate.ErrShortConference):
		writeError(w, r, nethttp.StatusConflict, err.Error(), h.logger)
	default:
		logging.Error(loggerFromContext(r, h.logger), "request failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", h.logger)
	}
}
