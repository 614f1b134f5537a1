// Package utils holds small helpers shared across layers: JWT issuance and
// parsing, password and token hashing, context keys and JSON writing.
package utils

import (
	"context"

	"github.com/jmrodas/parkings-api/models"
)

type contextKey string

// IdentityCtxKey carries the authenticated user's identity through the
// request context.
const IdentityCtxKey contextKey = "identity"

// IdentityFromContext extracts the authenticated identity set by the auth
// middleware. ok is false on unauthenticated (public) requests.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)

	return identity, ok
}
