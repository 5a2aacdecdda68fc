// Package catalog defines the relational catalog contract consumed by the
// ingestion pipeline. By using an interface, we decouple the pipeline from a
// specific database implementation, allowing a real Postgres catalog in
// production and an in-memory one in tests and offline dry runs.
package catalog

import (
	"context"

	"github.com/flagfootballdirectory/crawler/internal/record"
)

// Locality is a (city, state) pair with a stable identifier and slug, used
// as a foreign key from leagues and teams. (city, state) pairs are
// case-insensitively unique; the slug is globally unique. Localities are
// created lazily on first reference and never deleted by this pipeline.
type Locality struct {
	ID    int64
	Name  string
	State string
	Slug  string
}

// Entity is one catalog row for a league, team, or event. Leagues and teams
// reference a locality; events carry a raw location string and state.
// Pipeline-sourced rows always start with Verified false.
type Entity struct {
	ID           int64
	Kind         record.Kind
	Name         string
	Slug         string
	LocalityID   int64
	State        string
	Location     string
	EventKind    string
	StartDate    string
	EndDate      string
	Website      string
	Fee          float64
	SeasonStart  string
	SeasonEnd    string
	Divisions    []string
	Formats      []string
	Gender       string
	CompLevels   []string
	ContactType  string
	ContactEmail string
	ContactPhone string
	About        string
	Verified     bool
	Source       string
	SourceURL    string
}

// Store is the minimal catalog surface the pipeline needs: select by
// filter and insert. No update or delete operations are required.
type Store interface {
	// FindLocality returns the locality with the given name and state, or
	// nil when none exists. State is pre-normalized to uppercase by the
	// caller; the name match is exact.
	FindLocality(ctx context.Context, name, state string) (*Locality, error)

	// CountLocalitySlug returns how many localities already hold slug.
	CountLocalitySlug(ctx context.Context, slug string) (int, error)

	// InsertLocality stores a new locality and returns its identifier.
	InsertLocality(ctx context.Context, loc *Locality) (int64, error)

	// FindEntityBySlug returns the id of the row of the given kind holding
	// slug, if one exists.
	FindEntityBySlug(ctx context.Context, kind record.Kind, slug string) (int64, bool, error)

	// InsertEntity stores a new catalog row and returns its identifier.
	InsertEntity(ctx context.Context, e *Entity) (int64, error)

	// Close releases any underlying resources.
	Close()
}
