// Package handler renders the storefront pages and translates browser form
// submissions into API calls.
package handler

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"net/http"

	"github.com/shoply-dev/shoply/frontend/internal/apiclient"
	"github.com/shoply-dev/shoply/frontend/internal/render"
	"github.com/shoply-dev/shoply/frontend/internal/session"
	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/jwt"
	"github.com/shoply-dev/shoply/shared/logger"
)

const (
	flashCookieError   = "flash_error"
	flashCookieSuccess = "flash_success"
	prefillCookie      = "prefill_identity"
)

type Handler struct {
	Templates map[string]*template.Template
	Public    config.Public
	Sessions  *session.Store
	Accounts  *apiclient.APIClient
	Catalog   *apiclient.APIClient
	Markdown  *render.Markdown
	Jwt       jwt.JwtService
}

func New(templates map[string]*template.Template, publicCfg config.Public, sessions *session.Store,
	accounts, catalog *apiclient.APIClient, markdown *render.Markdown, jwtService jwt.JwtService) *Handler {
	return &Handler{
		Templates: templates,
		Public:    publicCfg,
		Sessions:  sessions,
		Accounts:  accounts,
		Catalog:   catalog,
		Markdown:  markdown,
		Jwt:       jwtService,
	}
}

// CommonTemplateData is available to every page: session identity plus
// one-shot flash messages.
type CommonTemplateData struct {
	LoggedIn bool
	Login    string
	Email    string
	IsAdmin  bool
	Error    string
	Success  string
	Prefill  string
}

// TemplateData wraps page-specific data; templates reach page data via .Data
// and shared state via .Common.
type TemplateData struct {
	Data   any
	Common CommonTemplateData
}

func (h *Handler) commonData(w http.ResponseWriter, r *http.Request) CommonTemplateData {
	common := CommonTemplateData{
		Error:   h.popFlash(w, r, flashCookieError),
		Success: h.popFlash(w, r, flashCookieSuccess),
		Prefill: h.popFlash(w, r, prefillCookie),
	}

	if s, ok := h.currentSession(r); ok {
		common.LoggedIn = true
		common.Login = s.Login
		common.Email = s.Email
		common.IsAdmin = s.IsAdmin
	}
	return common
}

// currentSession resolves the session cookie against the store.
func (h *Handler) currentSession(r *http.Request) (session.Session, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		return session.Session{}, false
	}
	return h.Sessions.Get(cookie.Value)
}

// renderTemplate executes into a buffer first, so a template error becomes a
// clean 500 instead of a half-written page.
func (h *Handler) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, ok := h.Templates[name]
	if !ok {
		logger.Log.Error("template not found", "name", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	wrapped := TemplateData{Data: data, Common: h.commonData(w, r)}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", wrapped); err != nil {
		logger.Log.Error("failed to render template", "name", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// Flash cookies are one-shot: set on redirect, consumed on the next render.
// Values are base64-encoded so arbitrary API messages survive cookie rules.

func (h *Handler) setFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     name,
		Value:    base64.URLEncoding.EncodeToString([]byte(value)),
		MaxAge:   60,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
	})
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{Path: "/", Name: name, MaxAge: -1, HttpOnly: true})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, target, cookieName, message string) {
	h.setFlash(w, cookieName, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RequireSession guards pages that only make sense when logged in.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.currentSession(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// apiErrorMessage keeps backend rejection text, but hides transport errors
// behind a generic message.
func apiErrorMessage(err error) string {
	if apiErr, ok := err.(*apiclient.APIError); ok {
		return apiErr.Message
	}
	logger.Log.Error("API call failed", "error", err)
	return "Service temporarily unavailable. Please try again later."
}
