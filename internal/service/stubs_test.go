package service

import (
	"context"
	"sync"

	"github.com/jmrodas/parkings-api/internal/events"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/models"
)

// stubQuerier is an in-memory RecordQuerier for service tests. Only the
// behavior the tests exercise is implemented.
type stubQuerier struct {
	mu     sync.Mutex
	tables map[string]map[int64]models.Row
	nextID int64

	// forced errors per operation
	insertErr error
	updateErr error

	lastFilters map[string]any
	lastOrder   string
	lastFields  []string
}

func newStubQuerier() *stubQuerier {
	return &stubQuerier{tables: make(map[string]map[int64]models.Row), nextID: 1}
}

func (s *stubQuerier) seed(table string, row models.Row) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[int64]models.Row)
	}
	id := s.nextID
	s.nextID++
	row = row.Clone()
	row["id"] = id
	s.tables[table][id] = row

	return id
}

func (s *stubQuerier) ByID(_ context.Context, table string, id int64) (models.Row, error) {
	if id <= 0 {
		return nil, store.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.tables[table][id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}

	return row.Clone(), nil
}

func (s *stubQuerier) All(_ context.Context, table string) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.Row
	for _, row := range s.tables[table] {
		rows = append(rows, row.Clone())
	}

	return rows, nil
}

func (s *stubQuerier) Filtered(_ context.Context, table string, filters map[string]any, order string, limit int) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastFilters = filters
	s.lastOrder = order

	var rows []models.Row
	for _, row := range s.tables[table] {
		match := true
		for col, want := range filters {
			if row[col] != want {
				match = false
				break
			}
		}
		if match {
			rows = append(rows, row.Clone())
		}
		if limit > 0 && len(rows) == limit {
			break
		}
	}

	return rows, nil
}

func (s *stubQuerier) TextSearch(_ context.Context, table, text string, fields []string) ([]models.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastFields = fields

	var rows []models.Row
	for _, row := range s.tables[table] {
		rows = append(rows, row.Clone())
	}

	return rows, nil
}

func (s *stubQuerier) Paginated(_ context.Context, table string, page, perPage int) ([]models.Row, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []models.Row
	for _, row := range s.tables[table] {
		rows = append(rows, row.Clone())
	}

	return rows, int64(len(s.tables[table])), nil
}

func (s *stubQuerier) Insert(_ context.Context, table string, row models.Row) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tables[table] == nil {
		s.tables[table] = make(map[int64]models.Row)
	}
	id := s.nextID
	s.nextID++
	stored := row.Clone()
	stored["id"] = id
	s.tables[table][id] = stored

	return id, nil
}

func (s *stubQuerier) Update(_ context.Context, table string, id int64, row models.Row) (models.Row, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.tables[table][id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	for col, value := range row {
		stored[col] = value
	}

	return stored.Clone(), nil
}

func (s *stubQuerier) Delete(_ context.Context, table string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[table][id]; !ok {
		return false, nil
	}
	delete(s.tables[table], id)

	return true, nil
}

// stubTokens is an in-memory TokenRepository.
type stubTokens struct {
	mu      sync.Mutex
	records map[string]models.TokenRecord
	saveErr error
}

func newStubTokens() *stubTokens {
	return &stubTokens{records: make(map[string]models.TokenRecord)}
}

func (s *stubTokens) Save(_ context.Context, record models.TokenRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.TokenHash] = record

	return nil
}

func (s *stubTokens) Find(_ context.Context, tokenHash string) (models.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[tokenHash]
	if !ok {
		return models.TokenRecord{}, store.ErrTokenNotFound
	}

	return record, nil
}

func (s *stubTokens) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.records[tokenHash]; ok {
		record.Revoked = true
		s.records[tokenHash] = record
	}

	return nil
}

func (s *stubTokens) PurgeExpired(context.Context) (int64, error) {
	return 0, nil
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]events.Event(nil), p.events...)
}
