// Package main serves the user record and cache facades over REST.
package main

import (
	"context"
	"fmt"
	log "log/slog"
	"os"

	"github.com/sharedcode/dbconnect"
	"github.com/sharedcode/dbconnect/redis"
	"github.com/sharedcode/dbconnect/restapi"
)

// @title dbconnect REST API
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	dbconnect.ConfigureLogging()
	if err := run(context.Background()); err != nil {
		log.Error("rest api stopped", "error", err)
		os.Exit(1)
	}
}

func loadConfig() (dbconnect.Config, error) {
	if p := os.Getenv("DBCONNECT_CONFIG"); p != "" {
		return dbconnect.LoadConfigFile(p)
	}
	return dbconnect.LoadConfig()
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	records, closeRecords, err := newRecordStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("couldn't open %s record store, details: %w", cfg.RecordBackend, err)
	}
	defer closeRecords()

	cache := redis.NewConnectionClient(redis.OptionsFromConfig(cfg.Cache))
	defer cache.Close()

	// Wait for the backends, they may still be coming up alongside this service.
	if err := dbconnect.Retry(ctx, func(ctx context.Context) error {
		if err := records.Ping(ctx); err != nil {
			return err
		}
		return cache.Ping(ctx)
	}, nil); err != nil {
		return err
	}

	s, err := restapi.NewServer(records, cache, restapi.Options{Auth: restapi.AuthConfigFromEnv()})
	if err != nil {
		return err
	}
	log.Info("rest api listening", "address", cfg.HTTPAddress, "record_backend", cfg.RecordBackend, "version", dbconnect.Version)
	return s.Router().Run(cfg.HTTPAddress)
}
