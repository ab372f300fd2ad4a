package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shoply-dev/shoply/frontend/internal/setup"
	mw "github.com/shoply-dev/shoply/shared/middleware"
	"github.com/shoply-dev/shoply/shared/middleware/metrics"
	rl "github.com/shoply-dev/shoply/shared/middleware/ratelimiter"
)

// New wires the storefront routes. The frontend serves HTML, so its CSP
// allows own styles but nothing external.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.NewMiddleware("frontend"))

	frontendCSP := "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Public.SecureCookies, frontendCSP))

	h := deps.Handler

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Browsing
	r.Get("/", h.ProductsGet)
	r.Get("/products/{id}", h.ProductGet)

	// Account lifecycle
	r.Get("/register", h.RegisterGet)
	r.Get("/login", h.LoginGet)
	r.Post("/logout", h.LogoutPost)
	r.Get("/account/confirmemail", h.ConfirmEmailGet)
	r.Get("/account/confirmemail/resend", h.ResendConfirmationGet)

	// Form submissions that trigger mail or credential checks carry per-IP
	// limits even though the backend enforces its own.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(rl.New(1.0/5, 2, 1*time.Hour), mw.GetIP))

		r.Post("/register", h.RegisterPost)
		r.Post("/login", h.LoginPost)
		r.Post("/account/confirmemail/resend", h.ResendConfirmationPost)
	})

	// Pages requiring a live session
	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)

		r.Get("/account", h.AccountGet)
		r.Post("/account/password/reset", h.PasswordResetPost)
		r.Post("/account/update", h.UpdateAccountPost)
		r.Post("/account/delete", h.DeleteAccountPost)
	})

	return r
}
