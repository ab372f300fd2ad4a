// Package service implements the catalog operations on top of the product
// repository: identifier assignment, timestamping, patch construction and
// pagination clamping.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/shoply-dev/shoply/catalog/internal/repository"
	"github.com/shoply-dev/shoply/shared/api"
	"github.com/shoply-dev/shoply/shared/domain"
	"github.com/shoply-dev/shoply/shared/errors"
	"go.mongodb.org/mongo-driver/bson"
)

type ProductService interface {
	Create(ctx context.Context, req api.CreateProductRequest) (domain.Product, error)
	Get(ctx context.Context, id domain.ProductId) (domain.Product, error)
	List(ctx context.Context, opts repository.ListOptions) (api.ProductListResponse, error)
	Update(ctx context.Context, id domain.ProductId, req api.UpdateProductRequest) (domain.Product, error)
	Delete(ctx context.Context, id domain.ProductId) error
}

type Products struct {
	repo            repository.ProductRepository
	pageSizeDefault int
	pageSizeMax     int
}

func NewProducts(repo repository.ProductRepository, pageSizeDefault, pageSizeMax int) *Products {
	return &Products{
		repo:            repo,
		pageSizeDefault: pageSizeDefault,
		pageSizeMax:     pageSizeMax,
	}
}

func (p *Products) Create(ctx context.Context, req api.CreateProductRequest) (domain.Product, error) {
	now := time.Now().UTC()
	product := domain.Product{
		Id:          xid.New().String(),
		Sku:         strings.TrimSpace(req.Sku),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Currency:    strings.ToUpper(req.Currency),
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Tags:        normalizeTags(req.Tags),
		Stock:       req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if product.Sku == "" || product.Name == "" || product.Category == "" {
		return domain.Product{}, errors.NewBadRequest("Sku, name and category must not be blank")
	}

	if err := p.repo.Store(ctx, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}

func (p *Products) Get(ctx context.Context, id domain.ProductId) (domain.Product, error) {
	if _, err := xid.FromString(id); err != nil {
		return domain.Product{}, errors.NewNotFound("Product not found")
	}
	return p.repo.ById(ctx, id)
}

func (p *Products) List(ctx context.Context, opts repository.ListOptions) (api.ProductListResponse, error) {
	opts.Page, opts.PageSize = p.clampPage(opts.Page, opts.PageSize)

	items, total, err := p.repo.List(ctx, opts)
	if err != nil {
		return api.ProductListResponse{}, err
	}

	return api.ProductListResponse{
		Items:    items,
		Page:     opts.Page,
		PageSize: opts.PageSize,
		Total:    total,
	}, nil
}

func (p *Products) Update(ctx context.Context, id domain.ProductId, req api.UpdateProductRequest) (domain.Product, error) {
	changes, err := buildChanges(req)
	if err != nil {
		return domain.Product{}, err
	}
	return p.repo.Update(ctx, id, changes)
}

func (p *Products) Delete(ctx context.Context, id domain.ProductId) error {
	return p.repo.Delete(ctx, id)
}

// buildChanges turns the pointer-field patch request into a $set document.
// Absent fields stay untouched; a request changing nothing is an error.
func buildChanges(req api.UpdateProductRequest) (bson.M, error) {
	changes := bson.M{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errors.NewBadRequest("Name must not be blank")
		}
		changes["name"] = name
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return nil, errors.NewBadRequest("Price must be positive")
		}
		changes["price_cents"] = *req.PriceCents
	}
	if req.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*req.Category))
		if category == "" {
			return nil, errors.NewBadRequest("Category must not be blank")
		}
		changes["category"] = category
	}
	if req.Tags != nil {
		changes["tags"] = normalizeTags(req.Tags)
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, errors.NewBadRequest("Stock must not be negative")
		}
		changes["stock"] = *req.Stock
	}

	if len(changes) == 0 {
		return nil, errors.NewBadRequest("Nothing to update")
	}

	changes["updated_at"] = time.Now().UTC()
	return changes, nil
}

func (p *Products) clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = p.pageSizeDefault
	}
	if pageSize > p.pageSizeMax {
		pageSize = p.pageSizeMax
	}
	return page, pageSize
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
