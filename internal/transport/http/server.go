package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"wordrush/internal/app"
	"wordrush/internal/config"
	"wordrush/internal/dictionary"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	service *app.GameService
	dict    *dictionary.Dictionary
	config  *config.Config
	logger  zerolog.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, service *app.GameService, dict *dictionary.Dictionary, logger zerolog.Logger) *Server {
	s := &Server{
		service: service,
		dict:    dict,
		config:  cfg,
		logger:  logger,
	}

	s.server = &http.Server{
		Addr:         cfg.GetAddr(),
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Routes builds the router with all middleware attached
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/stats", s.handleStats)

		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{code}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Get("/exists", s.handleGameExists)
			r.Post("/join", s.handleJoin)
			r.Post("/start", s.handleStart)
			r.Post("/words", s.handleSubmitWord)
			r.Delete("/words", s.handleRetractWord)
		})
	})

	return r
}

// logRequests logs every request with its status and duration
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		evt := s.logger.Info()
		if r.URL.Path == "/api/health" && !s.config.IsDevelopment() {
			evt = s.logger.Debug()
		}
		evt.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapped.statusCode).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("server-starting")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("server-shutting-down")
	return s.server.Shutdown(ctx)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
