package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docfill/internal/config"
	"github.com/dgallion1/docfill/internal/generator"
	"github.com/dgallion1/docfill/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docfill.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	gen          *generator.Generator
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, gen *generator.Generator, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		gen:          gen,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocfillAPIKey, s.log))

		r.Post("/api/generate", s.handleGenerate)
		r.Post("/api/inspect", s.handleInspect)
		r.Post("/api/preview", s.handlePreview)

		r.Post("/api/jobs", s.handleSubmitJob)
		r.Get("/api/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/result", s.handleJobResult)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
