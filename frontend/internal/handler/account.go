package handler

import (
	"net/http"

	"github.com/shoply-dev/shoply/shared/api"
)

// The account endpoints of the backend authenticate with credentials in the
// request body, so every mutating form here asks for the current password and
// passes it through without storing it.

func (h *Handler) AccountGet(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, r, "account.html", nil)
}

func (h *Handler) PasswordResetPost(w http.ResponseWriter, r *http.Request) {
	s, _ := h.currentSession(r)

	req := api.ResetPasswordRequest{
		Username:           s.Login,
		Password:           r.FormValue("password"),
		NewPassword:        r.FormValue("new_password"),
		ConfirmNewPassword: r.FormValue("confirm_new_password"),
	}

	resp, err := h.Accounts.ResetPassword(req)
	if err != nil {
		h.redirectWithFlash(w, r, "/account", flashCookieError, apiErrorMessage(err))
		return
	}

	// the old session was built on the old credentials
	h.endSession(w, r)
	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, resp.Message)
}

func (h *Handler) UpdateAccountPost(w http.ResponseWriter, r *http.Request) {
	s, _ := h.currentSession(r)

	req := api.UpdateAccountRequest{
		Username:        s.Login,
		Password:        r.FormValue("password"),
		NewUsername:     r.FormValue("new_username"),
		NewEmail:        r.FormValue("new_email"),
		ConfirmNewEmail: r.FormValue("confirm_new_email"),
	}

	resp, err := h.Accounts.UpdateAccount(req)
	if err != nil {
		h.redirectWithFlash(w, r, "/account", flashCookieError, apiErrorMessage(err))
		return
	}

	h.endSession(w, r)
	h.redirectWithFlash(w, r, "/login", flashCookieSuccess, resp.Message)
}

func (h *Handler) DeleteAccountPost(w http.ResponseWriter, r *http.Request) {
	s, _ := h.currentSession(r)

	req := api.DeleteAccountRequest{
		Username:    s.Login,
		Password:    r.FormValue("password"),
		IsConfirmed: r.FormValue("confirm_deletion") == "on",
	}

	resp, err := h.Accounts.DeleteAccount(req)
	if err != nil {
		h.redirectWithFlash(w, r, "/account", flashCookieError, apiErrorMessage(err))
		return
	}

	if !req.IsConfirmed {
		h.redirectWithFlash(w, r, "/account", flashCookieSuccess, resp.Message)
		return
	}

	h.endSession(w, r)
	h.redirectWithFlash(w, r, "/", flashCookieSuccess, resp.Message)
}
