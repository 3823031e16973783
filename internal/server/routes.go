package server

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hushbox/hushbox/config"
	"github.com/hushbox/hushbox/internal/store"
)

func SetupRouter(s store.Store, cfg *config.Config) *chi.Mux {
	h := NewHandler(s, cfg)

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(JSONOnly)

		if cfg.RateLimit.Enabled {
			limiter := NewRateLimiter(cfg.RateLimit.RequestsPerMin, time.Minute)
			r.Use(limiter.Middleware)
		}

		r.Post("/encrypt", h.CreateText)
		r.Post("/encrypt_file", h.CreateFile)
		r.Post("/decrypt", h.Retrieve)
	})

	return r
}
