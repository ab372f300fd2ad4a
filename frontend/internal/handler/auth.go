package handler

import (
	"net/http"

	"github.com/shoply-dev/shoply/frontend/internal/session"
	"github.com/shoply-dev/shoply/shared/api"
)

func (h *Handler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "register.html", nil)
}

func (h *Handler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	req := api.RegisterRequest{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		ConfirmEmail:    r.FormValue("confirm_email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	resp, err := h.Accounts.Register(req)
	if err != nil {
		h.setFlash(w, prefillCookie, req.Username)
		h.redirectWithFlash(w, r, "/register", flashCookieError, apiErrorMessage(err))
		return
	}

	h.setFlash(w, prefillCookie, req.Username)
	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, resp.Message)
}

func (h *Handler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "login.html", nil)
}

func (h *Handler) LoginPost(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	resp, err := h.Accounts.Login(api.LoginRequest{Username: username, Password: password})
	if err != nil {
		h.setFlash(w, prefillCookie, username)
		h.redirectWithFlash(w, r, "/login", flashCookieError, apiErrorMessage(err))
		return
	}

	// The bearer token stays server-side; the browser gets only the
	// session id.
	claims, err := h.Jwt.DecodeToken(resp.AccessToken)
	isAdmin := err == nil && claims.IsAdmin()

	id := h.Sessions.Create(resp.AccessToken, resp.Username, resp.Email, isAdmin, resp.ExpiresAt)
	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     session.CookieName,
		Value:    id,
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.Public.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) LogoutPost(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.Sessions.Delete(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Path:     "/",
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmEmailGet is the landing page of the emailed link. It forwards the
// query parameters to the accounts API and shows the outcome.
func (h *Handler) ConfirmEmailGet(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("userId")
	token := r.URL.Query().Get("token")

	resp, err := h.Accounts.ConfirmEmail(userId, token)
	if err != nil {
		h.redirectWithFlash(w, r, "/account/confirmemail/resend", flashCookieError, apiErrorMessage(err))
		return
	}

	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, resp.Message)
}

func (h *Handler) ResendConfirmationGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "resend_confirmation.html", nil)
}

func (h *Handler) ResendConfirmationPost(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	resp, err := h.Accounts.ResendConfirmation(email)
	if err != nil {
		h.setFlash(w, prefillCookie, email)
		h.redirectWithFlash(w, r, "/account/confirmemail/resend", flashCookieError, apiErrorMessage(err))
		return
	}

	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, resp.Message)
}

// endSession drops the session after operations that invalidate the stored
// identity.
func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.Sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Path: "/", Name: session.CookieName, Value: "", MaxAge: -1, HttpOnly: true})
}
