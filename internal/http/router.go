package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/catalog-validator/internal/http/handlers"
	rl "github.com/rogerio-castellano/catalog-validator/internal/http/rate_limiter"
)

type RouterOptions struct {
	JWTSecret []byte
	Limiter   *rl.Limiter
}

func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.HealthHandler)

	r.Group(func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(RateLimitMiddleware(opts.Limiter))
		}
		r.Use(AuthMiddleware(opts.JWTSecret))
		r.Get("/report", handlers.GetReportHandler)
	})
	return r
}
