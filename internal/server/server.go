package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/geotreasure/internal/auth"
	"github.com/osse101/geotreasure/internal/claim"
	"github.com/osse101/geotreasure/internal/handler"
	"github.com/osse101/geotreasure/internal/item"
	"github.com/osse101/geotreasure/internal/leaderboard"
	"github.com/osse101/geotreasure/internal/metrics"
	"github.com/osse101/geotreasure/internal/profile"
)

// Deps are the services the HTTP surface is built on. Events may be nil when
// no event log is configured; Readiness may be empty in in-memory mode.
type Deps struct {
	Tokens         *auth.TokenService
	AdminID        string
	Version        string
	TrustedProxies []string
	Profiles       profile.Service
	Items          item.Service
	Claims         claim.Service
	Rewards        handler.RewardLister
	Leaderboard    leaderboard.Board
	Events         handler.EventLister
	Readiness      []handler.ReadinessCheck
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter wires middleware and routes
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// outermost first
	detector := NewSuspiciousActivityDetector(nil)

	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(deps.TrustedProxies, detector))
	r.Use(AuthMiddleware(deps.Tokens, deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Readiness...))
	r.Get("/version", handler.HandleVersion(deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/profiles", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterProfile(deps.Profiles))
			r.Get("/{ownerID}", handler.HandleGetProfile(deps.Profiles))
			r.Get("/{ownerID}/rewards", handler.HandleGetRewards(deps.Profiles, deps.Rewards))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListItems(deps.Items))
			r.Get("/{itemID}", handler.HandleGetItem(deps.Items))
		})

		r.Post("/claims", handler.HandleClaim(deps.Claims))
		r.Get("/leaderboard", handler.HandleGetLeaderboard(deps.Leaderboard))

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin(deps.AdminID))
			r.Post("/items", handler.HandleAdminRegisterItem(deps.Items))
			r.Get("/events", handler.HandleAdminEvents(deps.Events))
		})
	})

	return r
}

// Start serves until Stop is called. http.ErrServerClosed means a clean stop.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
