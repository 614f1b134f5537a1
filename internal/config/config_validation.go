package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmrodas/parkings-api/internal/store"
)

// applyDefaults fills unset fields with sensible development defaults.
// Secrets and connection strings are never defaulted.
func applyDefaults(cfg *StructuredConfig) {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "parkings-api"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 24 * time.Hour
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = store.DriverPostgres
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Events.Queue == "" {
		cfg.Events.Queue = "recursos.cambios"
	}
}

// validate checks that the configuration is complete enough to start the
// server.
func validate(cfg *StructuredConfig) error {
	if cfg.App.TokenSignKey == "" {
		return ErrNoTokenSignKey
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrNoDatabaseDSN
	}
	if cfg.Storage.DB.Driver != store.DriverPostgres && cfg.Storage.DB.Driver != store.DriverSQLite {
		return ErrUnknownDriver
	}

	return nil
}
