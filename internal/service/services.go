// Package service implements the application's business rules on top of the
// store layer: generic per-resource CRUD gateways and bearer-token
// authentication.
package service

import (
	"time"

	"github.com/jmrodas/parkings-api/internal/events"
	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/internal/store"
)

// Services aggregates the application services consumed by the transport
// layer.
type Services struct {
	// Auth issues, verifies and invalidates bearer tokens.
	Auth AuthService
	// Records maps each registered resource name to its CRUD gateway.
	Records map[string]RecordGateway
}

// AuthConfig carries the token parameters for the auth service.
type AuthConfig struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	BcryptCost    int
}

// NewServices wires one RecordGateway per registered resource plus the auth
// service.
func NewServices(
	querier store.RecordQuerier,
	tokens store.TokenRepository,
	registry *resource.Registry,
	publisher events.Publisher,
	authCfg AuthConfig,
) *Services {
	records := make(map[string]RecordGateway, len(registry.Names()))
	for _, name := range registry.Names() {
		descriptor, _ := registry.Lookup(name)
		records[name] = newRecordService(querier, descriptor, publisher, authCfg.BcryptCost)
	}

	return &Services{
		Auth:    newAuthService(querier, tokens, authCfg),
		Records: records,
	}
}
