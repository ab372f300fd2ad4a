package repository

import (
	"go.mongodb.org/mongo-driver/bson"
)

// ProductFilter narrows a catalog listing. Zero values mean "no constraint".
type ProductFilter struct {
	Category  string
	Tags      []string
	PriceMin  int64 // cents, inclusive
	PriceMax  int64 // cents, inclusive
	Query     string
	InStock   bool
}

// ListOptions carries filtering, ordering and pagination for a listing.
type ListOptions struct {
	Filter   ProductFilter
	Sort     string // one of the sortFields keys, optionally "-" prefixed
	Page     int    // 1-based
	PageSize int
}

// sortFields whitelists the caller-facing sort keys. Anything else falls back
// to newest-first, so arbitrary field names never reach the query.
var sortFields = map[string]string{
	"price":   "price_cents",
	"name":    "name",
	"created": "created_at",
	"stock":   "stock",
}

// buildFilter translates a ProductFilter into the Mongo query document.
func buildFilter(f ProductFilter) bson.M {
	query := bson.M{}

	if f.Category != "" {
		query["category"] = f.Category
	}
	if len(f.Tags) > 0 {
		query["tags"] = bson.M{"$all": f.Tags}
	}

	price := bson.M{}
	if f.PriceMin > 0 {
		price["$gte"] = f.PriceMin
	}
	if f.PriceMax > 0 {
		price["$lte"] = f.PriceMax
	}
	if len(price) > 0 {
		query["price_cents"] = price
	}

	if f.InStock {
		query["stock"] = bson.M{"$gt": 0}
	}

	if f.Query != "" {
		query["$text"] = bson.M{"$search": f.Query}
	}

	return query
}

// buildSort translates the caller-facing sort key into the Mongo sort
// document. Unknown keys sort by newest first.
func buildSort(sort string) bson.D {
	direction := 1
	if len(sort) > 0 && sort[0] == '-' {
		direction = -1
		sort = sort[1:]
	}

	field, ok := sortFields[sort]
	if !ok {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return bson.D{{Key: field, Value: direction}}
}
