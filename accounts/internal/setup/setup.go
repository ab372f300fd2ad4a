package setup

import (
	"github.com/shoply-dev/shoply/accounts/internal/handler"
	"github.com/shoply-dev/shoply/accounts/internal/notifier"
	"github.com/shoply-dev/shoply/accounts/internal/service"
	"github.com/shoply-dev/shoply/accounts/internal/storage/pg"
	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/jwt"
)

// Dependencies holds all initialized collaborators of the accounts API.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Handler *handler.Handler
	Jwt     jwt.JwtService
}

// SetupDependencies initializes everything the accounts API needs, including
// the seeded default accounts.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	mail := notifier.New(&cfg.Private.Email)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL(), cfg.Public.JwtIssuer, cfg.Public.JwtAudience)

	accounts := service.NewAccounts(storage, mail, jwtService,
		cfg.Public.BaseURL, cfg.Public.DefaultAdmin, cfg.Public.DefaultUser)

	if err := service.SeedDefaultAccounts(storage,
		cfg.Public.DefaultAdmin, cfg.Private.DefaultAdminPass,
		cfg.Public.DefaultUser, cfg.Private.DefaultUserPass); err != nil {
		storage.Cleanup()
		return nil, err
	}

	h := handler.New(accounts)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Handler: h,
		Jwt:     jwtService,
	}, nil
}
