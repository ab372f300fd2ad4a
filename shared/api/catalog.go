package api

import "github.com/shoply-dev/shoply/shared/domain"

type CreateProductRequest struct {
	Sku         string   `json:"sku" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description,omitempty"`
	PriceCents  int64    `json:"price_cents" validate:"required,gt=0"`
	Currency    string   `json:"currency" validate:"required,len=3"`
	Category    string   `json:"category" validate:"required"`
	Tags        []string `json:"tags,omitempty"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	PriceCents  *int64   `json:"price_cents,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
}

type ProductListResponse struct {
	Items    []domain.Product `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Total    int64            `json:"total"`
}
