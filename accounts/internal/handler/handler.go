// Package handler exposes the account service over HTTP. It owns only the
// transport concerns: decoding, structural validation and status mapping.
// Every business rule lives in the service.
package handler

import (
	"net/http"

	"github.com/shoply-dev/shoply/accounts/internal/service"
)

type Handler struct {
	accounts service.AccountService
}

func New(accounts service.AccountService) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
