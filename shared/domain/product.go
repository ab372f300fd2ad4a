package domain

import "time"

type ProductId = string

// Product is the catalog aggregate stored in Mongo. Description is markdown;
// rendering and sanitizing happen in the frontend, never here.
type Product struct {
	Id          ProductId `bson:"_id" json:"id"`
	Sku         string    `bson:"sku" json:"sku"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	PriceCents  int64     `bson:"price_cents" json:"price_cents"`
	Currency    string    `bson:"currency" json:"currency"`
	Category    string    `bson:"category" json:"category"`
	Tags        []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	Stock       int       `bson:"stock" json:"stock"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
