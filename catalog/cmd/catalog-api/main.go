package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/shoply-dev/shoply/catalog/internal/router"
	"github.com/shoply-dev/shoply/catalog/internal/setup"
	"github.com/shoply-dev/shoply/shared/config"
	"github.com/shoply-dev/shoply/shared/logger"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "catalog/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	ctx := context.Background()
	deps, err := setup.SetupDependencies(ctx, cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Cleanup(ctx)

	r := router.New(deps)

	addr := cfg.Public.CatalogAddr
	if addr == "" {
		addr = ":8082"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Log.Info("catalog API listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
