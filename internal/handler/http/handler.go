// Package http implements the REST transport: routing, bearer-token gating,
// the Spanish JSON response envelope and the generic per-resource CRUD
// handlers.
package http

import (
	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/internal/service"
)

// Handler holds the dependencies of the HTTP layer and builds the router.
type Handler struct {
	services *service.Services
	registry *resource.Registry
	debug    bool
	logger   *logger.Logger
}

// NewHandler builds the HTTP layer on top of the application services.
func NewHandler(services *service.Services, registry *resource.Registry, debug bool, log *logger.Logger) *Handler {
	return &Handler{
		services: services,
		registry: registry,
		debug:    debug,
		logger:   log,
	}
}
