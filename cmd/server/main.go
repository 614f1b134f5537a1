package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmrodas/parkings-api/internal/config"
	"github.com/jmrodas/parkings-api/internal/events"
	handler "github.com/jmrodas/parkings-api/internal/handler/http"
	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/internal/server"
	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/internal/workers"
	"github.com/jmrodas/parkings-api/migrations"
)

// Build information, injected via -ldflags at release time.
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

const tokenPurgeInterval = time.Hour

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

func main() {
	printBuildInfo()

	log := logger.NewLogger("server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	ctx := log.Logger.WithContext(context.Background())

	db, err := store.NewConnect(ctx, cfg.Storage.DB.Driver, cfg.Storage.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if db.Driver() == store.DriverPostgres {
		if err := migrations.Migrate(db.DB); err != nil {
			log.Fatal().Err(err).Msg("error applying migrations")
		}
	}

	registry := resource.Defaults()
	queries := store.NewQueries(db)
	tokens := store.NewTokenStore(db)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.Events.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue)
		log.Info().Str("queue", cfg.Events.Queue).Msg("resource events enabled")
	}

	services := service.NewServices(queries, tokens, registry, publisher, service.AuthConfig{
		TokenSignKey:  cfg.App.TokenSignKey,
		TokenIssuer:   cfg.App.TokenIssuer,
		TokenDuration: cfg.App.TokenDuration,
		BcryptCost:    cfg.App.BcryptCost,
	})

	h := handler.NewHandler(services, registry, cfg.App.Debug, log)

	background := workers.NewWorkers(log,
		workers.NewTokenPurgeWorker(tokens, tokenPurgeInterval, log.GetChildLogger()),
	)
	workerCtx, stopWorkers := context.WithCancel(ctx)
	background.Run(workerCtx)

	srv := server.NewHTTPServer(cfg.Server.HTTPAddress, h.Init(), cfg.Server.RequestTimeout, log)
	if err := server.RunServer(ctx, srv, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
	}

	stopWorkers()
	background.Wait()
}
