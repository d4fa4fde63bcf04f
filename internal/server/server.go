// Package server is a development stand-in for the hosted hotel backend:
// a JSON REST API over SQLite or Postgres with a websocket change feed.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server assembles the routes over a Store.
type Server struct {
	cfg     Config
	store   *Store
	logger  *slog.Logger
	metrics *Metrics
	hub     *Hub
	router  chi.Router
}

// New builds a server. logger may be nil.
func New(cfg Config, store *Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	metrics := NewMetrics()
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		metrics: metrics,
		hub:     NewHub(logger, metrics),
	}
	s.router = s.routes()
	return s
}

// Hub exposes the change feed.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(recovery(s.logger), logging(s.logger, s.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(bearerAuth(s.cfg.APIKey))
		r.Get("/changes", s.hub.ServeHTTP)
		r.Route("/{table}", func(r chi.Router) {
			r.Get("/", s.listRecords)
			r.Post("/", s.createRecord)
			r.Get("/{id}", s.getRecord)
			r.Patch("/{id}", s.updateRecord)
			r.Delete("/{id}", s.deleteRecord)
		})
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("shutdown", "err", err)
		}
	}()

	s.logger.Info("starting server", "addr", s.cfg.Addr, "driver", s.store.Driver())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
