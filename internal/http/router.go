package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nba-elo-sim/internal/http/handlers"
	"github.com/preston-bernstein/nba-elo-sim/internal/http/middleware"
	"github.com/preston-bernstein/nba-elo-sim/internal/metrics"
)

// NewRouter registers HTTP routes behind the logging middleware.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logging(logger, recorder))

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/teams", handler.Teams)
	r.Get("/teams/{code}", handler.TeamByCode)
	r.Get("/standings", handler.Standings)
	r.Post("/postseason", handler.SimulatePostseason)
	r.Get("/postseason/latest", handler.LatestPostseason)
	return r
}
