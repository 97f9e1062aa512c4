// Package server exposes the simulator over a small JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Server is the schedsim REST API server.
type Server struct {
	router    chi.Router
	logger    logrus.FieldLogger
	store     *Store
	startTime time.Time
}

// New creates a Server with all routes registered.
// A nil logger uses the logrus standard logger.
func New(logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.WithField("component", "server"),
		store:     NewStore(),
		startTime: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(tagRequest)
	r.Use(s.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/algorithms", s.handleListAlgorithms)

		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.handleListSimulations)
			r.Post("/", s.handleCreateSimulation)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSimulation)
				r.Delete("/", s.handleDeleteSimulation)
				r.Get("/metrics", s.handleGetMetrics)
				r.Get("/steps/{index}", s.handleGetStep)
			})
		})
	})
}
