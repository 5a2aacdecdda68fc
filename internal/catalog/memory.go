package catalog

import (
	"context"
	"strings"
	"sync"

	"github.com/flagfootballdirectory/crawler/internal/record"
)

// Memory is an in-memory Store for tests and offline dry runs.
type Memory struct {
	mu         sync.Mutex
	nextID     int64
	Localities []Locality
	Entities   []Entity
}

// NewMemory creates an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// FindLocality matches name case-insensitively and state exactly, mirroring
// the unique constraint a real catalog enforces.
func (m *Memory) FindLocality(_ context.Context, name, state string) (*Locality, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Localities {
		if strings.EqualFold(m.Localities[i].Name, name) && m.Localities[i].State == state {
			loc := m.Localities[i]
			return &loc, nil
		}
	}
	return nil, nil
}

// CountLocalitySlug counts stored localities holding slug.
func (m *Memory) CountLocalitySlug(_ context.Context, slug string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := range m.Localities {
		if m.Localities[i].Slug == slug {
			n++
		}
	}
	return n, nil
}

// InsertLocality appends a locality and assigns it the next id.
func (m *Memory) InsertLocality(_ context.Context, loc *Locality) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *loc
	stored.ID = m.nextID
	m.nextID++
	m.Localities = append(m.Localities, stored)
	return stored.ID, nil
}

// FindEntityBySlug scans stored entities of the given kind for slug.
func (m *Memory) FindEntityBySlug(_ context.Context, kind record.Kind, slug string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Entities {
		if m.Entities[i].Kind == kind && m.Entities[i].Slug == slug {
			return m.Entities[i].ID, true, nil
		}
	}
	return 0, false, nil
}

// InsertEntity appends an entity row and assigns it the next id.
func (m *Memory) InsertEntity(_ context.Context, e *Entity) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *e
	stored.ID = m.nextID
	m.nextID++
	m.Entities = append(m.Entities, stored)
	return stored.ID, nil
}

// Close is a no-op for the in-memory catalog.
func (m *Memory) Close() {}
