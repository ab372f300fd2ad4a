package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shoply-dev/shoply/catalog/internal/repository"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/utils"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptionsFromQuery(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	resp, err := h.products.List(r.Context(), opts)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.CreateProductRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	product, err := h.products.Create(r.Context(), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateProductRequest
	if err := utils.Decode(r.Body, &req); err != nil {
		utils.WriteError(w, err)
		return
	}

	product, err := h.products.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		utils.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listOptionsFromQuery maps the listing query string onto repository options.
// Numeric garbage is a caller error, not a silent default.
func listOptionsFromQuery(r *http.Request) (repository.ListOptions, error) {
	q := r.URL.Query()

	opts := repository.ListOptions{
		Filter: repository.ProductFilter{
			Category: strings.ToLower(strings.TrimSpace(q.Get("category"))),
			Query:    strings.TrimSpace(q.Get("q")),
			InStock:  q.Get("in_stock") == "true",
		},
		Sort: q.Get("sort"),
	}

	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
				opts.Filter.Tags = append(opts.Filter.Tags, tag)
			}
		}
	}

	var err error
	if opts.Filter.PriceMin, err = queryInt64(q.Get("price_min")); err != nil {
		return opts, err
	}
	if opts.Filter.PriceMax, err = queryInt64(q.Get("price_max")); err != nil {
		return opts, err
	}

	page, err := queryInt64(q.Get("page"))
	if err != nil {
		return opts, err
	}
	pageSize, err := queryInt64(q.Get("page_size"))
	if err != nil {
		return opts, err
	}
	opts.Page, opts.PageSize = int(page), int(pageSize)

	return opts, nil
}

func queryInt64(value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil || n < 0 {
		return 0, errors.NewBadRequest("Query parameter must be a non-negative integer: " + value)
	}
	return n, nil
}
