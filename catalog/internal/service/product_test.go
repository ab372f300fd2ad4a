package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/shoply-dev/shoply/catalog/internal/repository"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type MockProductRepository struct {
	StoreFunc  func(ctx context.Context, product domain.Product) error
	ByIdFunc   func(ctx context.Context, id domain.ProductId) (domain.Product, error)
	ListFunc   func(ctx context.Context, opts repository.ListOptions) ([]domain.Product, int64, error)
	UpdateFunc func(ctx context.Context, id domain.ProductId, changes bson.M) (domain.Product, error)
	DeleteFunc func(ctx context.Context, id domain.ProductId) error
}

func (m *MockProductRepository) Store(ctx context.Context, product domain.Product) error {
	return m.StoreFunc(ctx, product)
}

func (m *MockProductRepository) ById(ctx context.Context, id domain.ProductId) (domain.Product, error) {
	return m.ByIdFunc(ctx, id)
}

func (m *MockProductRepository) List(ctx context.Context, opts repository.ListOptions) ([]domain.Product, int64, error) {
	return m.ListFunc(ctx, opts)
}

func (m *MockProductRepository) Update(ctx context.Context, id domain.ProductId, changes bson.M) (domain.Product, error) {
	return m.UpdateFunc(ctx, id, changes)
}

func (m *MockProductRepository) Delete(ctx context.Context, id domain.ProductId) error {
	return m.DeleteFunc(ctx, id)
}

func validCreateRequest() api.CreateProductRequest {
	return api.CreateProductRequest{
		Sku:        "SKU-001",
		Name:       "Trail Runner",
		PriceCents: 12900,
		Currency:   "eur",
		Category:   "Shoes",
		Tags:       []string{"Sale", "sale", " summer "},
		Stock:      5,
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("assigns id, normalizes fields, stamps times", func(t *testing.T) {
		var stored domain.Product
		repo := &MockProductRepository{
			StoreFunc: func(ctx context.Context, product domain.Product) error {
				stored = product
				return nil
			},
		}
		svc := NewProducts(repo, 20, 100)

		product, err := svc.Create(context.Background(), validCreateRequest())

		require.NoError(t, err)
		_, err = xid.FromString(product.Id)
		assert.NoError(t, err)
		assert.Equal(t, "EUR", stored.Currency)
		assert.Equal(t, "shoes", stored.Category)
		assert.Equal(t, []string{"sale", "summer"}, stored.Tags)
		assert.WithinDuration(t, time.Now(), stored.CreatedAt, 5*time.Second)
		assert.Equal(t, stored.CreatedAt, stored.UpdatedAt)
	})

	t.Run("duplicate sku conflict passes through", func(t *testing.T) {
		repo := &MockProductRepository{
			StoreFunc: func(ctx context.Context, product domain.Product) error {
				return internal_errors.NewConflict("Sku is already in use")
			},
		}
		svc := NewProducts(repo, 20, 100)

		_, err := svc.Create(context.Background(), validCreateRequest())

		require.Error(t, err)
		assert.True(t, internal_errors.IsConflict(err))
	})

	t.Run("blank sku rejected", func(t *testing.T) {
		svc := NewProducts(&MockProductRepository{}, 20, 100)

		req := validCreateRequest()
		req.Sku = "   "
		_, err := svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.True(t, internal_errors.IsBadRequest(err))
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("malformed id is not found without a repository hit", func(t *testing.T) {
		svc := NewProducts(&MockProductRepository{}, 20, 100)

		_, err := svc.Get(context.Background(), "not-an-xid")

		require.Error(t, err)
		assert.True(t, internal_errors.IsNotFound(err))
	})

	t.Run("valid id is looked up", func(t *testing.T) {
		id := xid.New().String()
		repo := &MockProductRepository{
			ByIdFunc: func(ctx context.Context, gotId domain.ProductId) (domain.Product, error) {
				assert.Equal(t, id, gotId)
				return domain.Product{Id: gotId, Name: "Trail Runner"}, nil
			},
		}
		svc := NewProducts(repo, 20, 100)

		product, err := svc.Get(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, "Trail Runner", product.Name)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("clamps page and page size", func(t *testing.T) {
		var gotOpts repository.ListOptions
		repo := &MockProductRepository{
			ListFunc: func(ctx context.Context, opts repository.ListOptions) ([]domain.Product, int64, error) {
				gotOpts = opts
				return []domain.Product{}, 0, nil
			},
		}
		svc := NewProducts(repo, 20, 100)

		resp, err := svc.List(context.Background(), repository.ListOptions{Page: 0, PageSize: 5000})

		require.NoError(t, err)
		assert.Equal(t, 1, gotOpts.Page)
		assert.Equal(t, 100, gotOpts.PageSize)
		assert.Equal(t, 1, resp.Page)
		assert.NotNil(t, resp.Items)
	})

	t.Run("default page size applies when unset", func(t *testing.T) {
		repo := &MockProductRepository{
			ListFunc: func(ctx context.Context, opts repository.ListOptions) ([]domain.Product, int64, error) {
				assert.Equal(t, 20, opts.PageSize)
				return []domain.Product{{Id: "p1"}}, 1, nil
			},
		}
		svc := NewProducts(repo, 20, 100)

		resp, err := svc.List(context.Background(), repository.ListOptions{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
		assert.Len(t, resp.Items, 1)
	})
}

func TestUpdateProduct(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }
	int64Ptr := func(i int64) *int64 { return &i }

	t.Run("builds a patch from present fields only", func(t *testing.T) {
		var gotChanges bson.M
		repo := &MockProductRepository{
			UpdateFunc: func(ctx context.Context, id domain.ProductId, changes bson.M) (domain.Product, error) {
				gotChanges = changes
				return domain.Product{Id: id}, nil
			},
		}
		svc := NewProducts(repo, 20, 100)

		_, err := svc.Update(context.Background(), "p1", api.UpdateProductRequest{
			Name:  strPtr("Renamed"),
			Stock: intPtr(0),
		})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", gotChanges["name"])
		assert.Equal(t, 0, gotChanges["stock"])
		assert.Contains(t, gotChanges, "updated_at")
		assert.NotContains(t, gotChanges, "price_cents")
		assert.NotContains(t, gotChanges, "category")
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		svc := NewProducts(&MockProductRepository{}, 20, 100)

		_, err := svc.Update(context.Background(), "p1", api.UpdateProductRequest{})

		require.Error(t, err)
		assert.True(t, internal_errors.IsBadRequest(err))
	})

	t.Run("non-positive price rejected", func(t *testing.T) {
		svc := NewProducts(&MockProductRepository{}, 20, 100)

		_, err := svc.Update(context.Background(), "p1", api.UpdateProductRequest{PriceCents: int64Ptr(0)})

		require.Error(t, err)
		assert.True(t, internal_errors.IsBadRequest(err))
	})

	t.Run("negative stock rejected", func(t *testing.T) {
		svc := NewProducts(&MockProductRepository{}, 20, 100)

		_, err := svc.Update(context.Background(), "p1", api.UpdateProductRequest{Stock: intPtr(-1)})

		require.Error(t, err)
		assert.True(t, internal_errors.IsBadRequest(err))
	})
}
