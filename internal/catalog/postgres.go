package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flagfootballdirectory/crawler/internal/record"
)

// entityTables maps an entity kind to its catalog table.
var entityTables = map[record.Kind]string{
	record.KindLeague: "leagues",
	record.KindTeam:   "teams",
	record.KindEvent:  "events",
}

// PostgresConfig controls the Postgres connection pool behind the catalog.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type pgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Postgres implements Store against a Postgres catalog via pgx.
type Postgres struct {
	pool pgxPool
}

// NewPostgres connects a catalog store using the provided config. A missing
// DSN is a configuration failure and is surfaced immediately.
func NewPostgres(ctx context.Context, cfg PostgresConfig) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// NewPostgresWithPool constructs a store from an existing pool (primarily
// for testing).
func NewPostgresWithPool(pool pgxPool) (*Postgres, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying pool resources.
func (s *Postgres) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

// FindLocality looks up a locality by exact name and state.
func (s *Postgres) FindLocality(ctx context.Context, name, state string) (*Locality, error) {
	var loc Locality
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, state, slug FROM cities WHERE name = $1 AND state = $2`,
		name, state,
	).Scan(&loc.ID, &loc.Name, &loc.State, &loc.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select locality: %w", err)
	}
	return &loc, nil
}

// CountLocalitySlug counts existing localities holding slug.
func (s *Postgres) CountLocalitySlug(ctx context.Context, slug string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM cities WHERE slug = $1`, slug,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count locality slug: %w", err)
	}
	return n, nil
}

// InsertLocality stores a new city row and returns its id.
func (s *Postgres) InsertLocality(ctx context.Context, loc *Locality) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO cities (name, state, slug) VALUES ($1, $2, $3) RETURNING id`,
		loc.Name, loc.State, loc.Slug,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert locality: %w", err)
	}
	return id, nil
}

// FindEntityBySlug returns the id of the row of the given kind holding slug.
func (s *Postgres) FindEntityBySlug(ctx context.Context, kind record.Kind, slug string) (int64, bool, error) {
	table, ok := entityTables[kind]
	if !ok {
		return 0, false, fmt.Errorf("unknown entity kind %q", kind)
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT id FROM %s WHERE slug = $1`, table), slug,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("select %s slug: %w", table, err)
	}
	return id, true, nil
}

// InsertEntity writes one catalog row as a single insert so a record is
// never partially written.
func (s *Postgres) InsertEntity(ctx context.Context, e *Entity) (int64, error) {
	var (
		query string
		args  []any
	)
	switch e.Kind {
	case record.KindLeague:
		query = `INSERT INTO leagues (
	name, slug, city_id, website, fees, season_start, season_end,
	divisions, formats, contact_type, comp_levels, about,
	contact_email, contact_phone, verified, source, source_url
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
RETURNING id`
		args = []any{
			e.Name, e.Slug, e.LocalityID, e.Website, e.Fee,
			nullIfEmpty(e.SeasonStart), nullIfEmpty(e.SeasonEnd),
			e.Divisions, e.Formats, e.ContactType, e.CompLevels, e.About,
			e.ContactEmail, e.ContactPhone, e.Verified, e.Source, e.SourceURL,
		}
	case record.KindTeam:
		query = `INSERT INTO teams (
	name, slug, city_id, gender, age_groups, formats, comp_levels,
	contact_type, about, website, contact_email, contact_phone,
	verified, source, source_url
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
RETURNING id`
		args = []any{
			e.Name, e.Slug, e.LocalityID, e.Gender, e.Divisions, e.Formats,
			e.CompLevels, e.ContactType, e.About, e.Website,
			e.ContactEmail, e.ContactPhone, e.Verified, e.Source, e.SourceURL,
		}
	case record.KindEvent:
		query = `INSERT INTO events (
	name, slug, kind, state, location, start_date, end_date, fee,
	divisions, formats, contact_type, comp_levels, website, about,
	contact_email, contact_phone, verified, source, source_url
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
RETURNING id`
		args = []any{
			e.Name, e.Slug, e.EventKind, e.State, e.Location,
			nullIfEmpty(e.StartDate), nullIfEmpty(e.EndDate), e.Fee,
			e.Divisions, e.Formats, e.ContactType, e.CompLevels,
			e.Website, e.About, e.ContactEmail, e.ContactPhone,
			e.Verified, e.Source, e.SourceURL,
		}
	default:
		return 0, fmt.Errorf("unknown entity kind %q", e.Kind)
	}

	var id int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert %s: %w", e.Kind, err)
	}
	return id, nil
}

// nullIfEmpty maps "" to NULL for nullable date columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
