package handler

import (
	"net/http"

	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/utils"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.Register(req, domain.RoleUser)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// RegisterAdmin differs from Register only in the role granted. The route is
// reachable without authentication on purpose: the seeded admin is created
// through it at startup, and operators shield it at the network layer.
func (h *Handler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.Register(req, domain.RoleAdmin)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.Login(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req api.DeleteAccountRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.Delete(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req api.ResetPasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.ResetPassword(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateAccountRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.Update(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	var req api.AdminResetPasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.AdminResetPassword(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req api.AdminUpdateAccountRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.AdminUpdate(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// ConfirmEmail is hit by following the emailed link, so parameters arrive in
// the query string rather than a JSON body.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("userId")
	token := r.URL.Query().Get("token")

	resp, err := h.accounts.ConfirmEmail(userId, token)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var req api.ResendConfirmationRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.accounts.ResendConfirmation(req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
