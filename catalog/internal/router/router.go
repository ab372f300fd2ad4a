package router

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoply-dev/shoply/catalog/internal/setup"
	mw "github.com/shoply-dev/shoply/shared/middleware"
	"github.com/shoply-dev/shoply/shared/middleware/metrics"
	rl "github.com/shoply-dev/shoply/shared/middleware/ratelimiter"
)

var SupportedAPIVersions = []string{"1.0"}

// New wires the catalog routes: public reads, admin-only mutations. The admin
// group is double-locked: an admin bearer token plus the service API key.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.NewMiddleware("catalog"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", mw.VersionHeader, mw.APIKeyHeader},
	}))

	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, "default-src 'none'; frame-ancestors 'none'"))

	r.Get("/health", deps.Handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAPIVersion(SupportedAPIVersions...))
		r.Use(mw.GlobalRateLimit(rl.Rps100()))

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.AdminOnly())
			r.Use(mw.RequireAPIKey(deps.Config.Private.CatalogAPIKey))

			r.Post("/admin/products", h.CreateProduct)
			r.Put("/admin/products/{id}", h.UpdateProduct)
			r.Delete("/admin/products/{id}", h.DeleteProduct)
		})
	})

	return r
}
