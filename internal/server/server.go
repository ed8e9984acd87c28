package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quennell/hearthstead/internal/construction"
	"github.com/quennell/hearthstead/internal/database"
	"github.com/quennell/hearthstead/internal/handler"
	"github.com/quennell/hearthstead/internal/jobs"
	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/metrics"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/repository"
	"github.com/quennell/hearthstead/internal/sim"
)

// Deps bundles everything the HTTP surface needs. Snapshots and Archive may
// be nil when running without a database.
type Deps struct {
	DBPool       database.Pool
	World        *sim.World
	Roster       population.Service
	Jobs         jobs.Service
	Construction construction.Service
	Modifiers    modifier.Service
	Snapshots    repository.Snapshot
	Archive      repository.EventArchive
}

// Server wraps the HTTP server and its routed dependencies.
type Server struct {
	httpServer *http.Server
	deps       Deps
}

// NewServer builds the router and middleware stack. Chi middleware executes
// in the order defined, outermost first.
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	summaries := handler.NewSummaryHandler(deps.World)
	jobHandler := handler.NewJobHandler(deps.Jobs)
	constructionHandler := handler.NewConstructionHandler(deps.World, deps.Construction)
	effectHandler := handler.NewEffectHandler(deps.World, deps.Modifiers)
	adminHandler := handler.NewAdminHandler(deps.World, deps.Snapshots, deps.Archive, summaries)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/summary", func(r chi.Router) {
			r.Get("/", summaries.HandleWorld())
			r.Get("/population", summaries.HandlePopulation())
			r.Get("/employment", summaries.HandleEmployment())
			r.Get("/construction", summaries.HandleConstruction())
			r.Get("/effects", summaries.HandleEffects())
			r.Get("/stock", summaries.HandleStock())
		})

		r.Route("/villagers", func(r chi.Router) {
			r.Get("/", handler.HandleListVillagers(deps.Roster))
			r.Get("/get", handler.HandleGetVillager(deps.Roster))
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/types", jobHandler.HandleGetJobTypes)
			r.Get("/slots", jobHandler.HandleGetSlots)
			r.Post("/assign", jobHandler.HandleAssign)
			r.Post("/unassign", jobHandler.HandleUnassign)
			r.Post("/auto-assign", jobHandler.HandleAutoAssign)
		})

		r.Route("/buildings", func(r chi.Router) {
			r.Get("/", constructionHandler.HandleGetBuildings)
			r.Get("/sites", constructionHandler.HandleGetSites)
			r.Post("/place", constructionHandler.HandlePlaceBuilding)
			r.Post("/builders/assign", constructionHandler.HandleAssignBuilder)
			r.Post("/builders/unassign", constructionHandler.HandleUnassignBuilder)
		})

		r.Route("/effects", func(r chi.Router) {
			r.Get("/", effectHandler.HandleGetEffects)
			r.Post("/apply", effectHandler.HandleApplyEffect)
			r.Post("/technology", effectHandler.HandleApplyTechnology)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/advance-day", adminHandler.HandleAdvanceDay)
			r.Post("/resources", adminHandler.HandleAddResources)
			r.Post("/snapshot/save", adminHandler.HandleSaveSnapshot)
			r.Post("/snapshot/restore", adminHandler.HandleRestoreSnapshot)
			r.Get("/snapshots", adminHandler.HandleListSnapshots)
			r.Get("/events", adminHandler.HandleGetEvents)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		deps: deps,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Health checks and scrapes would drown out everything else.
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
