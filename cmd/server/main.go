// Command server runs the shared contact-directory service: accounts,
// per-account address books, and discretionary read permissions, served over
// HTTP with both a PDU entry point and a REST facade.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/annuaire/directory-system/internal/api"
	"github.com/annuaire/directory-system/internal/api/handler"
	"github.com/annuaire/directory-system/internal/core/service"
	"github.com/annuaire/directory-system/internal/infrastructure/store/csvstore"
	"github.com/annuaire/directory-system/internal/infrastructure/store/mongostore"
	"github.com/annuaire/directory-system/internal/pkg/config"
	"github.com/annuaire/directory-system/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Service: "directory-server",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty; tokens are signed with an empty key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		JWTSecret: cfg.JWTSecret,
		TokenTTL:  cfg.TokenTTL,
		Logger:    log,
	}

	switch cfg.Storage.Backend {
	case "mongo":
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("mongo index creation failed")
		}

		deps.Accounts = mongostore.NewAccountRepository(db)
		deps.Directories = mongostore.NewDirectoryRepository(db)
		deps.Permissions = mongostore.NewPermissionRepository(db)
		deps.Storage = mongoPinger{client: client}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo storage backend")

	case "csv":
		store := csvstore.New(cfg.Storage.DataDir)
		if err := store.Init(); err != nil {
			log.Fatal().Err(err).Msg("data directory initialisation failed")
		}
		deps.Accounts = store.Accounts()
		deps.Directories = store.Directories()
		deps.Permissions = store.Permissions()
		log.Info().Str("data_dir", cfg.Storage.DataDir).Msg("using flat-file storage backend")

	default:
		log.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}

	// A fresh deployment must never be locked out of the admin operations.
	accounts := service.NewAccountService(deps.Accounts, deps.Directories, deps.Permissions, log)
	if err := accounts.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("default administrator bootstrap failed")
	}

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// mongoPinger adapts the mongo client to the readiness probe.
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}

var _ handler.Pinger = mongoPinger{}
