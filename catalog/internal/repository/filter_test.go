package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter ProductFilter
		want   bson.M
	}{
		{
			name:   "empty filter matches everything",
			filter: ProductFilter{},
			want:   bson.M{},
		},
		{
			name:   "category only",
			filter: ProductFilter{Category: "shoes"},
			want:   bson.M{"category": "shoes"},
		},
		{
			name:   "all tags must match",
			filter: ProductFilter{Tags: []string{"sale", "summer"}},
			want:   bson.M{"tags": bson.M{"$all": []string{"sale", "summer"}}},
		},
		{
			name:   "price range is inclusive on both ends",
			filter: ProductFilter{PriceMin: 1000, PriceMax: 5000},
			want:   bson.M{"price_cents": bson.M{"$gte": int64(1000), "$lte": int64(5000)}},
		},
		{
			name:   "open-ended price range",
			filter: ProductFilter{PriceMin: 1000},
			want:   bson.M{"price_cents": bson.M{"$gte": int64(1000)}},
		},
		{
			name:   "text search",
			filter: ProductFilter{Query: "running shoes"},
			want:   bson.M{"$text": bson.M{"$search": "running shoes"}},
		},
		{
			name:   "in stock only",
			filter: ProductFilter{InStock: true},
			want:   bson.M{"stock": bson.M{"$gt": 0}},
		},
		{
			name:   "combined constraints",
			filter: ProductFilter{Category: "shoes", PriceMax: 9900, InStock: true},
			want: bson.M{
				"category":    "shoes",
				"price_cents": bson.M{"$lte": int64(9900)},
				"stock":       bson.M{"$gt": 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildFilter(tt.filter))
		})
	}
}

func TestBuildSort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want bson.D
	}{
		{"ascending price", "price", bson.D{{Key: "price_cents", Value: 1}}},
		{"descending price", "-price", bson.D{{Key: "price_cents", Value: -1}}},
		{"name", "name", bson.D{{Key: "name", Value: 1}}},
		{"unknown key falls back to newest first", "password_hash", bson.D{{Key: "created_at", Value: -1}}},
		{"empty key falls back to newest first", "", bson.D{{Key: "created_at", Value: -1}}},
		{"bare dash falls back", "-", bson.D{{Key: "created_at", Value: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildSort(tt.sort))
		})
	}
}
