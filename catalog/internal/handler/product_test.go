package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shoply-dev/shoply/catalog/internal/repository"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProductService struct {
	CreateFunc func(ctx context.Context, req api.CreateProductRequest) (domain.Product, error)
	GetFunc    func(ctx context.Context, id domain.ProductId) (domain.Product, error)
	ListFunc   func(ctx context.Context, opts repository.ListOptions) (api.ProductListResponse, error)
	UpdateFunc func(ctx context.Context, id domain.ProductId, req api.UpdateProductRequest) (domain.Product, error)
	DeleteFunc func(ctx context.Context, id domain.ProductId) error
}

func (m *MockProductService) Create(ctx context.Context, req api.CreateProductRequest) (domain.Product, error) {
	return m.CreateFunc(ctx, req)
}

func (m *MockProductService) Get(ctx context.Context, id domain.ProductId) (domain.Product, error) {
	return m.GetFunc(ctx, id)
}

func (m *MockProductService) List(ctx context.Context, opts repository.ListOptions) (api.ProductListResponse, error) {
	return m.ListFunc(ctx, opts)
}

func (m *MockProductService) Update(ctx context.Context, id domain.ProductId, req api.UpdateProductRequest) (domain.Product, error) {
	return m.UpdateFunc(ctx, id, req)
}

func (m *MockProductService) Delete(ctx context.Context, id domain.ProductId) error {
	return m.DeleteFunc(ctx, id)
}

// testRouter mounts the handler on a real chi router so URL params resolve.
func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Post("/admin/products", h.CreateProduct)
	r.Put("/admin/products/{id}", h.UpdateProduct)
	r.Delete("/admin/products/{id}", h.DeleteProduct)
	return r
}

func TestListProductsHandler(t *testing.T) {
	t.Run("query string maps onto list options", func(t *testing.T) {
		var gotOpts repository.ListOptions
		h := New(&MockProductService{
			ListFunc: func(ctx context.Context, opts repository.ListOptions) (api.ProductListResponse, error) {
				gotOpts = opts
				return api.ProductListResponse{Items: []domain.Product{}, Page: opts.Page, PageSize: 20}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet,
			"/products?category=Shoes&tags=sale,%20Summer&price_min=1000&price_max=5000&q=runner&in_stock=true&sort=-price&page=2&page_size=10", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "shoes", gotOpts.Filter.Category)
		assert.Equal(t, []string{"sale", "summer"}, gotOpts.Filter.Tags)
		assert.Equal(t, int64(1000), gotOpts.Filter.PriceMin)
		assert.Equal(t, int64(5000), gotOpts.Filter.PriceMax)
		assert.Equal(t, "runner", gotOpts.Filter.Query)
		assert.True(t, gotOpts.Filter.InStock)
		assert.Equal(t, "-price", gotOpts.Sort)
		assert.Equal(t, 2, gotOpts.Page)
		assert.Equal(t, 10, gotOpts.PageSize)
	})

	t.Run("non-numeric page is 400", func(t *testing.T) {
		h := New(&MockProductService{})

		req := httptest.NewRequest(http.MethodGet, "/products?page=two", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := New(&MockProductService{
			GetFunc: func(ctx context.Context, id domain.ProductId) (domain.Product, error) {
				return domain.Product{Id: id, Name: "Trail Runner"}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products/p1", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var product domain.Product
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&product))
		assert.Equal(t, "p1", product.Id)
	})

	t.Run("missing is 404 with structured body", func(t *testing.T) {
		h := New(&MockProductService{
			GetFunc: func(ctx context.Context, id domain.ProductId) (domain.Product, error) {
				return domain.Product{}, internal_errors.NewNotFound("Product not found")
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/products/ghost", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "Product not found", body["message"])
	})
}

func TestCreateProductHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		h := New(&MockProductService{
			CreateFunc: func(ctx context.Context, req api.CreateProductRequest) (domain.Product, error) {
				return domain.Product{Id: "p1", Sku: req.Sku}, nil
			},
		})

		body := `{"sku": "SKU-001", "name": "Trail Runner", "price_cents": 12900, "currency": "EUR", "category": "shoes"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing required fields is 400", func(t *testing.T) {
		h := New(&MockProductService{})

		req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(`{"sku": "SKU-001"}`))
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate sku is 409", func(t *testing.T) {
		h := New(&MockProductService{
			CreateFunc: func(ctx context.Context, req api.CreateProductRequest) (domain.Product, error) {
				return domain.Product{}, internal_errors.NewConflict("Sku is already in use")
			},
		})

		body := `{"sku": "SKU-001", "name": "Trail Runner", "price_cents": 12900, "currency": "EUR", "category": "shoes"}`
		req := httptest.NewRequest(http.MethodPost, "/admin/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	h := New(&MockProductService{
		UpdateFunc: func(ctx context.Context, id domain.ProductId, req api.UpdateProductRequest) (domain.Product, error) {
			assert.Equal(t, "p1", id)
			require.NotNil(t, req.Stock)
			return domain.Product{Id: id, Stock: *req.Stock}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPut, "/admin/products/p1", strings.NewReader(`{"stock": 7}`))
	rec := httptest.NewRecorder()
	testRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteProductHandler(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		h := New(&MockProductService{
			DeleteFunc: func(ctx context.Context, id domain.ProductId) error { return nil },
		})

		req := httptest.NewRequest(http.MethodDelete, "/admin/products/p1", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing is 404", func(t *testing.T) {
		h := New(&MockProductService{
			DeleteFunc: func(ctx context.Context, id domain.ProductId) error {
				return internal_errors.NewNotFound("Product not found")
			},
		})

		req := httptest.NewRequest(http.MethodDelete, "/admin/products/ghost", nil)
		rec := httptest.NewRecorder()
		testRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
