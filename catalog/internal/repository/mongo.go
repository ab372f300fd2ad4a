// Package repository is the Mongo-backed product store.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/domain"
	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

type ProductRepository interface {
	Store(ctx context.Context, product domain.Product) error
	ById(ctx context.Context, id domain.ProductId) (domain.Product, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Product, int64, error)
	Update(ctx context.Context, id domain.ProductId, changes bson.M) (domain.Product, error)
	Delete(ctx context.Context, id domain.ProductId) error
}

type mongoProductRepository struct {
	collection *mongo.Collection
}

// Connect establishes the Mongo connection and prepares the product
// collection: a unique index on sku and a text index for search.
func Connect(ctx context.Context, cfg *config.Mongo) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)

	_, err = collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	if err != nil {
		client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return client, collection, nil
}

func NewMongoProductRepository(c *mongo.Collection) ProductRepository {
	return &mongoProductRepository{collection: c}
}

func (m *mongoProductRepository) Store(ctx context.Context, product domain.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := m.collection.InsertOne(ctx, product)
	if mongo.IsDuplicateKeyError(err) {
		return internal_errors.NewConflict("Sku is already in use")
	}
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (m *mongoProductRepository) ById(ctx context.Context, id domain.ProductId) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var product domain.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return domain.Product{}, internal_errors.NewNotFound("Product not found")
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// List returns one page of matching products plus the total match count.
func (m *mongoProductRepository) List(ctx context.Context, opts ListOptions) ([]domain.Product, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := buildFilter(opts.Filter)

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	findOpts := options.Find().
		SetSort(buildSort(opts.Sort)).
		SetSkip(int64(opts.Page-1) * int64(opts.PageSize)).
		SetLimit(int64(opts.PageSize))

	cursor, err := m.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

// Update applies a $set patch and returns the post-update document.
func (m *mongoProductRepository) Update(ctx context.Context, id domain.ProductId, changes bson.M) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	after := options.After
	var product domain.Product
	err := m.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": changes},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return domain.Product{}, internal_errors.NewNotFound("Product not found")
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (m *mongoProductRepository) Delete(ctx context.Context, id domain.ProductId) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return internal_errors.NewNotFound("Product not found")
	}
	return nil
}
