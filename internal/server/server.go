// Package server exposes the supervisory dashboard HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haricode-hub/dashboard/internal/adapters"
	"github.com/haricode-hub/dashboard/internal/common/logger"
	"github.com/haricode-hub/dashboard/internal/common/observability"
	"github.com/haricode-hub/dashboard/internal/worklist"
)

type Server struct {
	worklist *worklist.Service
	registry *adapters.Registry
	logger   logger.Logger
	obs      *observability.Observability
	http     *http.Server
}

func New(addr string, wl *worklist.Service, reg *adapters.Registry, log logger.Logger, obs *observability.Observability) *Server {
	if obs == nil {
		obs = &observability.Observability{}
	}
	s := &Server{
		worklist: wl,
		registry: reg,
		logger:   log,
		obs:      obs,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/approvals", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/details", s.handleDetails)
		r.Post("/approve", s.handleApprove)
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"addr": s.http.Addr})
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
