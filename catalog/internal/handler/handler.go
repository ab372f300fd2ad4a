// Package handler exposes the catalog over HTTP. Read endpoints are public;
// mutations sit behind admin JWT plus the service API key.
package handler

import (
	"net/http"

	"github.com/shoply-dev/shoply/catalog/internal/service"
)

type Handler struct {
	products service.ProductService
}

func New(products service.ProductService) *Handler {
	return &Handler{products: products}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
