package http

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/resource"
	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/models"
)

// stubGateway is an in-memory RecordGateway for handler tests.
type stubGateway struct {
	mu         sync.Mutex
	descriptor resource.Descriptor
	rows       map[int64]models.Row
	nextID     int64

	// forced error returned by every operation when set
	err error
}

var _ service.RecordGateway = (*stubGateway)(nil)

func newStubGateway(descriptor resource.Descriptor) *stubGateway {
	return &stubGateway{descriptor: descriptor, rows: make(map[int64]models.Row), nextID: 1}
}

func (g *stubGateway) seed(row models.Row) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextID
	g.nextID++
	stored := row.Clone()
	stored["id"] = id
	g.rows[id] = stored

	return id
}

func (g *stubGateway) sorted() []models.Row {
	ids := make([]int64, 0, len(g.rows))
	for id := range g.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]models.Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, g.rows[id].Clone())
	}

	return rows
}

func (g *stubGateway) Resource() resource.Descriptor {
	return g.descriptor
}

func (g *stubGateway) Get(_ context.Context, id int64) (models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	row, ok := g.rows[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}

	return row.Clone(), nil
}

func (g *stubGateway) List(_ context.Context) ([]models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.sorted(), nil
}

func (g *stubGateway) ListFiltered(_ context.Context, filters map[string]string, order string, limit int) ([]models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	var rows []models.Row
	for _, row := range g.sorted() {
		match := true
		for col, want := range filters {
			got := row[col]
			if s, ok := got.(string); ok {
				if s != want {
					match = false
					break
				}
				continue
			}
			if n, ok := got.(int64); ok {
				if strconv.FormatInt(n, 10) != want {
					match = false
					break
				}
				continue
			}
			match = false
			break
		}
		if match {
			rows = append(rows, row)
		}
		if limit > 0 && len(rows) == limit {
			break
		}
	}

	return rows, nil
}

func (g *stubGateway) Search(_ context.Context, text string, fields []string) ([]models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}

	return g.List(context.Background())
}

func (g *stubGateway) ListPaginated(_ context.Context, page, perPage int) ([]models.Row, models.Paginacion, error) {
	if g.err != nil {
		return nil, models.Paginacion{}, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	all := g.sorted()
	total := int64(len(all))

	start := (page - 1) * perPage
	if start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}

	return all[start:end], models.NewPaginacion(total, page, perPage), nil
}

func (g *stubGateway) Create(_ context.Context, row models.Row) (models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}

	cleaned, fieldErrs := resource.Validate(g.descriptor, row, false)
	if len(fieldErrs) > 0 {
		return nil, &service.ValidationError{Errores: fieldErrs}
	}

	id := g.seed(cleaned)
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.rows[id].Clone(), nil
}

func (g *stubGateway) Update(_ context.Context, id int64, row models.Row) (models.Row, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	stored, ok := g.rows[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}

	cleaned, fieldErrs := resource.Validate(g.descriptor, row, true)
	if len(fieldErrs) > 0 {
		return nil, &service.ValidationError{Errores: fieldErrs}
	}
	if len(cleaned) == 0 {
		return nil, service.ErrInvalidDataProvided
	}

	for col, value := range cleaned {
		stored[col] = value
	}

	return stored.Clone(), nil
}

func (g *stubGateway) Delete(_ context.Context, id int64) error {
	if g.err != nil {
		return g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.rows[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(g.rows, id)

	return nil
}

// stubAuth is a fixed-token AuthService for handler tests.
type stubAuth struct {
	validToken string
	identity   models.Identity

	verifyErr error
	loginErr  error

	mu          sync.Mutex
	revoked     []string
	loginCalled bool
}

var _ service.AuthService = (*stubAuth)(nil)

func (a *stubAuth) Login(_ context.Context, usuario, password string) (models.Identity, string, error) {
	a.mu.Lock()
	a.loginCalled = true
	a.mu.Unlock()

	if a.loginErr != nil {
		return models.Identity{}, "", a.loginErr
	}

	return a.identity, a.validToken, nil
}

func (a *stubAuth) Verify(_ context.Context, signed string) (models.Identity, error) {
	if a.verifyErr != nil {
		return models.Identity{}, a.verifyErr
	}
	if signed != a.validToken {
		return models.Identity{}, service.ErrTokenInvalid
	}

	return a.identity, nil
}

func (a *stubAuth) Invalidate(_ context.Context, signed string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.revoked = append(a.revoked, signed)

	return nil
}

// newTestHandler wires a Handler around stub gateways for every default
// resource plus a stub auth service accepting token "token-valido".
func newTestHandler() (*Handler, map[string]*stubGateway, *stubAuth) {
	registry := resource.Defaults()

	gateways := make(map[string]*stubGateway)
	records := make(map[string]service.RecordGateway)
	for _, name := range registry.Names() {
		descriptor, _ := registry.Lookup(name)
		g := newStubGateway(descriptor)
		gateways[name] = g
		records[name] = g
	}

	auth := &stubAuth{
		validToken: "token-valido",
		identity:   models.Identity{ID: 1, Nombre: "Ana", Rol: "admin"},
	}

	services := &service.Services{Auth: auth, Records: records}

	return NewHandler(services, registry, false, logger.Nop()), gateways, auth
}
