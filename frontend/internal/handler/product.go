package handler

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
)

// browseParams whitelists the query parameters forwarded to the catalog.
var browseParams = []string{"category", "tags", "q", "price_min", "price_max", "in_stock", "sort", "page", "page_size"}

type productListPage struct {
	Listing api.ProductListResponse
	Query   url.Values
	HasPrev bool
	HasNext bool
}

type productPage struct {
	Product     domain.Product
	Description template.HTML
}

func (h *Handler) ProductsGet(w http.ResponseWriter, r *http.Request) {
	query := url.Values{}
	for _, param := range browseParams {
		if v := r.URL.Query().Get(param); v != "" {
			query.Set(param, v)
		}
	}

	listing, err := h.Catalog.ListProducts(query)
	if err != nil {
		h.renderTemplate(w, r, "products.html", productListPage{Query: query})
		return
	}

	page := productListPage{
		Listing: listing,
		Query:   query,
		HasPrev: listing.Page > 1,
		HasNext: int64(listing.Page)*int64(listing.PageSize) < listing.Total,
	}
	h.renderTemplate(w, r, "products.html", page)
}

func (h *Handler) ProductGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.GetProduct(chi.URLParam(r, "id"))
	if err != nil {
		h.redirectWithFlash(w, r, "/", flashCookieError, apiErrorMessage(err))
		return
	}

	page := productPage{
		Product:     product,
		Description: h.Markdown.Render(product.Description),
	}
	h.renderTemplate(w, r, "product.html", page)
}
