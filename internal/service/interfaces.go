package service

import (
	"context"

	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/models"
)

// RecordGateway exposes the CRUD operations of one registered resource. It
// validates and cleans incoming data, applies field transforms, strips hidden
// fields from responses and emits change events.
type RecordGateway interface {
	// Resource returns the descriptor this gateway serves.
	Resource() resource.Descriptor

	// Get fetches one record by id.
	Get(ctx context.Context, id int64) (models.Row, error)

	// List fetches all records ordered by id.
	List(ctx context.Context) ([]models.Row, error)

	// ListFiltered fetches records matching the given column filters, with
	// an optional order ("columna" or "columna desc") and row limit.
	ListFiltered(ctx context.Context, filters map[string]string, order string, limit int) ([]models.Row, error)

	// Search fetches records containing text in any of the given fields.
	// An empty fields slice searches the resource's default columns.
	Search(ctx context.Context, text string, fields []string) ([]models.Row, error)

	// ListPaginated fetches one page plus pagination metadata.
	ListPaginated(ctx context.Context, page, perPage int) ([]models.Row, models.Paginacion, error)

	// Create validates and persists a new record, returning it in full.
	Create(ctx context.Context, row models.Row) (models.Row, error)

	// Update validates and applies a partial update, returning the full
	// updated record.
	Update(ctx context.Context, id int64, row models.Row) (models.Row, error)

	// Delete removes one record.
	Delete(ctx context.Context, id int64) error
}

// AuthService issues, verifies and invalidates bearer tokens.
type AuthService interface {
	// Login authenticates the credentials and returns the user's identity
	// with a freshly issued signed token.
	Login(ctx context.Context, usuario, password string) (models.Identity, string, error)

	// Verify checks a signed token against both its claims and the token
	// store, returning the identity it was issued for. Verify never mutates
	// stored state.
	Verify(ctx context.Context, signed string) (models.Identity, error)

	// Invalidate revokes a signed token. Idempotent.
	Invalidate(ctx context.Context, signed string) error
}
