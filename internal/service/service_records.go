package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmrodas/parkings-api/internal/events"
	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/internal/utils"
	"github.com/jmrodas/parkings-api/models"
)

// recordService implements RecordGateway for one resource descriptor.
type recordService struct {
	querier    store.RecordQuerier
	descriptor resource.Descriptor
	publisher  events.Publisher
	bcryptCost int
}

var _ RecordGateway = (*recordService)(nil)

func newRecordService(
	querier store.RecordQuerier,
	descriptor resource.Descriptor,
	publisher events.Publisher,
	bcryptCost int,
) *recordService {
	return &recordService{
		querier:    querier,
		descriptor: descriptor,
		publisher:  publisher,
		bcryptCost: bcryptCost,
	}
}

func (s *recordService) Resource() resource.Descriptor {
	return s.descriptor
}

func (s *recordService) Get(ctx context.Context, id int64) (models.Row, error) {
	row, err := s.querier.ByID(ctx, s.descriptor.Name, id)
	if err != nil {
		return nil, err
	}

	return s.stripHidden(row), nil
}

func (s *recordService) List(ctx context.Context) ([]models.Row, error) {
	rows, err := s.querier.All(ctx, s.descriptor.Name)
	if err != nil {
		return nil, err
	}

	return s.stripHiddenAll(rows), nil
}

func (s *recordService) ListFiltered(ctx context.Context, filters map[string]string, order string, limit int) ([]models.Row, error) {
	converted, err := s.convertFilters(filters)
	if err != nil {
		return nil, err
	}

	orderClause, err := s.orderClause(order)
	if err != nil {
		return nil, err
	}

	rows, err := s.querier.Filtered(ctx, s.descriptor.Name, converted, orderClause, limit)
	if err != nil {
		return nil, err
	}

	return s.stripHiddenAll(rows), nil
}

func (s *recordService) Search(ctx context.Context, text string, fields []string) ([]models.Row, error) {
	// Only declared columns are searchable; unknown names fall back to the
	// resource defaults.
	valid := make([]string, 0, len(fields))
	for _, f := range fields {
		if s.descriptor.HasColumn(f) && f != "id" {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		valid = s.descriptor.SearchDefaults()
	}

	rows, err := s.querier.TextSearch(ctx, s.descriptor.Name, text, valid)
	if err != nil {
		return nil, err
	}

	return s.stripHiddenAll(rows), nil
}

func (s *recordService) ListPaginated(ctx context.Context, page, perPage int) ([]models.Row, models.Paginacion, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	rows, total, err := s.querier.Paginated(ctx, s.descriptor.Name, page, perPage)
	if err != nil {
		return nil, models.Paginacion{}, err
	}

	return s.stripHiddenAll(rows), models.NewPaginacion(total, page, perPage), nil
}

func (s *recordService) Create(ctx context.Context, row models.Row) (models.Row, error) {
	cleaned, fieldErrs := resource.Validate(s.descriptor, row, false)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Errores: fieldErrs}
	}

	if err := s.applyTransforms(cleaned); err != nil {
		return nil, err
	}

	id, err := s.querier.Insert(ctx, s.descriptor.Name, cleaned)
	if err != nil {
		return nil, err
	}

	created, err := s.querier.ByID(ctx, s.descriptor.Name, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AccionCreado, id)

	return s.stripHidden(created), nil
}

func (s *recordService) Update(ctx context.Context, id int64, row models.Row) (models.Row, error) {
	// Check existence first so an absent id reports not-found rather than a
	// validation error.
	if _, err := s.querier.ByID(ctx, s.descriptor.Name, id); err != nil {
		return nil, err
	}

	cleaned, fieldErrs := resource.Validate(s.descriptor, row, true)
	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Errores: fieldErrs}
	}
	if len(cleaned) == 0 {
		return nil, ErrInvalidDataProvided
	}

	if err := s.applyTransforms(cleaned); err != nil {
		return nil, err
	}

	updated, err := s.querier.Update(ctx, s.descriptor.Name, id, cleaned)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.AccionActualizado, id)

	return s.stripHidden(updated), nil
}

func (s *recordService) Delete(ctx context.Context, id int64) error {
	removed, err := s.querier.Delete(ctx, s.descriptor.Name, id)
	if err != nil {
		return err
	}
	if !removed {
		return store.ErrRecordNotFound
	}

	s.publish(ctx, events.AccionEliminado, id)

	return nil
}

// convertFilters turns string query values into typed values per the
// descriptor. Unknown columns are dropped.
func (s *recordService) convertFilters(filters map[string]string) (map[string]any, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	converted := make(map[string]any, len(filters))
	for name, value := range filters {
		field, ok := s.descriptor.Field(name)
		if !ok {
			if name == "id" {
				id, err := strconv.ParseInt(value, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: id must be an integer", ErrInvalidDataProvided)
				}
				converted["id"] = id
			}
			continue
		}

		switch field.Type {
		case resource.TypeInt:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be an integer", ErrInvalidDataProvided, name)
			}
			converted[name] = n
		case resource.TypeFloat:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidDataProvided, name)
			}
			converted[name] = f
		case resource.TypeBool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s must be a boolean", ErrInvalidDataProvided, name)
			}
			converted[name] = b
		default:
			converted[name] = value
		}
	}

	return converted, nil
}

// orderClause validates an order request of the form "columna" or
// "columna desc" against the descriptor's columns.
func (s *recordService) orderClause(order string) (string, error) {
	order = strings.TrimSpace(order)
	if order == "" {
		return "id", nil
	}

	parts := strings.Fields(order)
	if len(parts) > 2 {
		return "", ErrInvalidOrder
	}

	column := parts[0]
	if !s.descriptor.HasColumn(column) {
		return "", ErrInvalidOrder
	}

	direction := "ASC"
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			direction = "DESC"
		default:
			return "", ErrInvalidOrder
		}
	}

	return column + " " + direction, nil
}

// applyTransforms rewrites field values that declare a write transform.
func (s *recordService) applyTransforms(row models.Row) error {
	for _, field := range s.descriptor.Fields {
		if field.Transform != resource.TransformPasswordHash {
			continue
		}
		value, ok := row[field.Name].(string)
		if !ok || value == "" {
			continue
		}

		hashed, err := utils.HashPassword(value, s.bcryptCost)
		if err != nil {
			return err
		}
		row[field.Name] = hashed
	}

	return nil
}

func (s *recordService) stripHidden(row models.Row) models.Row {
	for _, field := range s.descriptor.Fields {
		if field.Hidden {
			delete(row, field.Name)
		}
	}

	return row
}

func (s *recordService) stripHiddenAll(rows []models.Row) []models.Row {
	for _, row := range rows {
		s.stripHidden(row)
	}

	return rows
}

// publish emits a change event. Failures are logged and ignored; the write
// has already been committed.
func (s *recordService) publish(ctx context.Context, accion string, id int64) {
	event := events.Event{
		Recurso: s.descriptor.Name,
		Accion:  accion,
		ID:      id,
		Fecha:   time.Now(),
	}
	if identity, ok := utils.IdentityFromContext(ctx); ok {
		event.ActorID = identity.ID
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("recurso", event.Recurso).
			Str("accion", accion).
			Msg("error publishing resource event")
	}
}
