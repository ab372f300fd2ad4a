package setup

import (
	"context"

	"github.com/shoply-dev/shoply/catalog/internal/handler"
	"github.com/shoply-dev/shoply/catalog/internal/repository"
	"github.com/shoply-dev/shoply/catalog/internal/service"
	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/jwt"
	"github.com/shoply-dev/shoply/shared/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies holds all initialized collaborators of the catalog API.
type Dependencies struct {
	Config  *config.Config
	Client  *mongo.Client
	Handler *handler.Handler
	Auth    *middleware.Auth
}

// SetupDependencies connects to Mongo and wires the catalog service stack.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	client, collection, err := repository.Connect(ctx, &cfg.Private.Mongo)
	if err != nil {
		return nil, err
	}

	repo := repository.NewMongoProductRepository(collection)
	products := service.NewProducts(repo, cfg.Public.PageSizeDefault, cfg.Public.PageSizeMax)
	h := handler.New(products)

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL(), cfg.Public.JwtIssuer, cfg.Public.JwtAudience)
	auth := middleware.NewAuth(jwtService)

	return &Dependencies{
		Config:  cfg,
		Client:  client,
		Handler: h,
		Auth:    auth,
	}, nil
}

// Cleanup releases the Mongo connection.
func (d *Dependencies) Cleanup(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
