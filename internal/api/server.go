// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package api exposes the settings document to the UI over HTTP.
package api

import (
	"net/http"

	"github.com/ManuGH/verge/internal/api/middleware"
	"github.com/ManuGH/verge/internal/verge"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Settings is the part of *verge.Verge the API depends on.
type Settings interface {
	Config() verge.Config
	PatchConfig(patch verge.Config) error
}

// Config holds the HTTP surface options.
type Config struct {
	EnableMetrics bool
	EnableLogging bool
	RateLimitRPM  int
}

// Server serves the settings API.
type Server struct {
	settings Settings
	router   chi.Router
}

// New builds a Server backed by settings.
func New(settings Settings, cfg Config) *Server {
	s := &Server{settings: settings}

	r := middleware.NewRouter(middleware.StackConfig{
		EnableMetrics: cfg.EnableMetrics,
		EnableLogging: cfg.EnableLogging,
		RateLimitRPM:  cfg.RateLimitRPM,
	})
	s.routes(r, cfg)
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes(r chi.Router, cfg Config) {
	r.Get("/healthz", handleHealth)
	if cfg.EnableMetrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/verge", func(r chi.Router) {
		r.Get("/", s.handleGetConfig)
		r.Patch("/", s.handlePatchConfig)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
