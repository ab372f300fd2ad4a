package setup

import (
	"fmt"
	"html/template"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/shoply-dev/shoply/frontend/internal/apiclient"
	"github.com/shoply-dev/shoply/frontend/internal/handler"
	"github.com/shoply-dev/shoply/frontend/internal/render"
	"github.com/shoply-dev/shoply/frontend/internal/session"
	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/jwt"
)

const (
	baseTemplate = "base.html"
	tmplPath     = "templates"

	sessionCleanupInterval = 1 * time.Minute
)

type Dependencies struct {
	Handler  *handler.Handler
	Public   config.Public
	Sessions *session.Store
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	templates, err := loadTemplates(tmplPath)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(cfg.Public.SessionTTL, sessionCleanupInterval)

	accounts := apiclient.New(apiBaseURL(cfg.Public.AccountsAddr))
	catalog := apiclient.New(apiBaseURL(cfg.Public.CatalogAddr))
	markdown := render.New()
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL(), cfg.Public.JwtIssuer, cfg.Public.JwtAudience)

	h := handler.New(templates, cfg.Public, sessions, accounts, catalog, markdown, jwtService)

	return &Dependencies{
		Handler:  h,
		Public:   cfg.Public,
		Sessions: sessions,
	}, nil
}

// Cleanup stops the session janitor.
func (d *Dependencies) Cleanup() {
	d.Sessions.Stop()
}

// formatPrice renders minor units as "12.34 USD".
func formatPrice(cents int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", cents/100, cents%100, currency)
}

// apiBaseURL turns a configured service address into a client base URL.
// Bare listen addresses like ":8080" resolve to localhost.
func apiBaseURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// loadTemplates parses every page template against the shared base layout.
// Pages are keyed by file name.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	pages, err := filepath.Glob(path.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob templates: %w", err)
	}

	base := path.Join(dir, baseTemplate)
	templates := make(map[string]*template.Template)

	funcs := template.FuncMap{
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
		"price": formatPrice,
	}

	for _, page := range pages {
		name := filepath.Base(page)
		if name == baseTemplate {
			continue
		}
		tmpl, err := template.New(baseTemplate).Funcs(funcs).ParseFiles(base, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no page templates found in %s", dir)
	}
	return templates, nil
}
