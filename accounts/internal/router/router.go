package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shoply-dev/shoply/accounts/internal/setup"
	mw "github.com/shoply-dev/shoply/shared/middleware"
	"github.com/shoply-dev/shoply/shared/middleware/metrics"
	rl "github.com/shoply-dev/shoply/shared/middleware/ratelimiter"
)

// SupportedAPIVersions lists the versions accepted in the X-Api-Version
// header. Versioning happens in the header, the paths stay unversioned.
var SupportedAPIVersions = []string{"1.0"}

// New wires all account routes. Rate limiters attached with Use() apply to
// every endpoint of that group combined.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.NewMiddleware("accounts"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", mw.VersionHeader},
	}))

	// JSON API only: strict CSP
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, "default-src 'none'; frame-ancestors 'none'"))

	r.Get("/health", deps.Handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	h := deps.Handler

	r.Group(func(r chi.Router) {
		r.Use(mw.RequireAPIVersion(SupportedAPIVersions...))

		// Registration and resend trigger outbound mail, so they carry the
		// tightest limits: per-email, per-IP and a global backstop.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.New(1.0/10, 1, 1*time.Hour), mw.GetEmailFromBody))
			r.Use(mw.RateLimit(rl.New(1.0/10, 1, 1*time.Hour), mw.GetIP))
			r.Use(mw.GlobalRateLimit(rl.Rps100()))

			r.Post("/new", h.Register)
			r.Post("/admin/new", h.RegisterAdmin)
			r.Post("/account/confirmemail/resend", h.ResendConfirmation)
		})

		// Credential-checking endpoints: per-IP limit plus a global backstop.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
			r.Use(mw.GlobalRateLimit(rl.Rps100()))

			r.Post("/account/login", h.Login)
			r.Delete("/account/delete", h.Delete)
			r.Put("/account/password/reset", h.ResetPassword)
			r.Put("/account/update", h.Update)
			r.Put("/admin/update/password", h.AdminResetPassword)
			r.Put("/admin/update", h.AdminUpdate)
		})

		// Token consumption: stricter per-IP limit against brute force.
		r.Group(func(r chi.Router) {
			r.Use(mw.RateLimit(rl.New(5.0/600.0, 5, 1*time.Hour), mw.GetIP))
			r.Use(mw.GlobalRateLimit(rl.Rps100()))

			r.Get("/account/confirmemail", h.ConfirmEmail)
		})
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	})

	return r
}
