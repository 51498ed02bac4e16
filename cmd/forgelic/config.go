package main

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ForgeOps/forge-license-sdk/forgelicense/issueregistry"
)

// registryConfig selects the issued-license registry backend. Exactly one
// of the connection settings is expected; Postgres wins when both are set.
type registryConfig struct {
	DatabaseURL   string `env:"FORGELIC_DATABASE_URL"`
	MongoURI      string `env:"FORGELIC_MONGO_URI"`
	MongoDatabase string `env:"FORGELIC_MONGO_DATABASE" envDefault:"forgelic"`
}

func loadRegistryConfig() (registryConfig, error) {
	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	var cfg registryConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse registry configuration: %w", err)
	}
	return cfg, nil
}

// openRegistry connects the configured registry backend. It returns a nil
// registry when none is configured; cleanup is always safe to call.
func openRegistry(ctx context.Context) (issueregistry.Registry, func(context.Context), error) {
	noop := func(context.Context) {}

	cfg, err := loadRegistryConfig()
	if err != nil {
		return nil, noop, err
	}

	switch {
	case cfg.DatabaseURL != "":
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		reg, err := issueregistry.NewPostgresRegistry(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return reg, func(ctx context.Context) { _ = reg.Close(ctx) }, nil

	case cfg.MongoURI != "":
		client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, noop, fmt.Errorf("connect mongo: %w", err)
		}
		reg, err := issueregistry.NewMongoRegistry(ctx, client.Database(cfg.MongoDatabase))
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, noop, err
		}
		return reg, func(ctx context.Context) { _ = client.Disconnect(ctx) }, nil
	}

	return nil, noop, fmt.Errorf("no registry configured: set FORGELIC_DATABASE_URL or FORGELIC_MONGO_URI")
}
