// Package ingest reconciles candidate records against the catalog through
// validation, identity resolution, and append-only inserts.
package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/catalog"
	"github.com/flagfootballdirectory/crawler/internal/record"
	"github.com/flagfootballdirectory/crawler/internal/slugify"
)

// Stats summarizes one ingestion run.
type Stats struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Orchestrator drives per-record validation, identity resolution, and
// inserts against the catalog. It is strictly append-only: an existing row
// is never updated or deleted; a name whose slug is already taken simply
// receives a second row under a disambiguated slug.
type Orchestrator struct {
	store      catalog.Store
	logger     *zap.Logger
	runID      string
	localities *localityResolver
}

// New constructs an Orchestrator for a single run. The locality cache it
// owns is scoped to that run and never shared across runs.
func New(store catalog.Store, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))
	return &Orchestrator{
		store:      store,
		logger:     logger,
		runID:      runID,
		localities: newLocalityResolver(store, logger),
	}
}

// RunID returns the unique identifier attached to this run's log lines.
func (o *Orchestrator) RunID() string {
	return o.runID
}

// Ingest processes candidates in input order. Validation failures count as
// skipped; resolution or store failures count as failed; neither aborts the
// batch. With dryRun set, intended writes are logged and counted as success
// without mutating the store.
func (o *Orchestrator) Ingest(ctx context.Context, candidates []record.Candidate, dryRun bool) Stats {
	var stats Stats
	for i := range candidates {
		c := &candidates[i]

		if !c.HasRequiredFields() {
			o.logger.Warn("skipping candidate with missing required fields",
				zap.String("kind", string(c.Kind)), zap.String("name", c.Name))
			stats.Skipped++
			TotalSkipped.Inc()
			continue
		}

		entity, err := o.assemble(ctx, c, dryRun)
		if err != nil {
			o.logger.Error("failed to resolve candidate",
				zap.String("name", c.Name), zap.Error(err))
			stats.Failed++
			TotalFailed.Inc()
			continue
		}

		if dryRun {
			o.logger.Info("dry run: would insert",
				zap.String("kind", string(entity.Kind)),
				zap.String("name", entity.Name),
				zap.String("slug", entity.Slug))
			stats.Success++
			TotalIngested.Inc()
			continue
		}

		id, err := o.store.InsertEntity(ctx, entity)
		if err != nil {
			o.logger.Error("failed to insert candidate",
				zap.String("name", c.Name), zap.Error(err))
			stats.Failed++
			TotalFailed.Inc()
			continue
		}
		o.logger.Info("ingested",
			zap.String("kind", string(entity.Kind)),
			zap.String("name", entity.Name),
			zap.String("slug", entity.Slug),
			zap.Int64("id", id))
		stats.Success++
		TotalIngested.Inc()
	}
	return stats
}

// assemble materializes the full catalog row for a validated candidate,
// resolving its locality reference and a collision-free slug.
func (o *Orchestrator) assemble(ctx context.Context, c *record.Candidate, dryRun bool) (*catalog.Entity, error) {
	e := &catalog.Entity{
		Kind:         c.Kind,
		Name:         c.Name,
		State:        strings.ToUpper(c.State),
		Location:     c.Location,
		EventKind:    c.EventKind,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Website:      c.Website,
		Fee:          c.Fee,
		SeasonStart:  c.SeasonStart,
		SeasonEnd:    c.SeasonEnd,
		Divisions:    c.Divisions,
		Formats:      c.Formats,
		Gender:       c.Gender,
		CompLevels:   c.CompLevels,
		ContactType:  c.ContactType,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		About:        c.About,
		Verified:     false,
		Source:       c.Source,
		SourceURL:    c.SourceURL,
	}

	if c.Kind.NeedsLocality() {
		localityID, err := o.localities.resolve(ctx, c.City, c.State, dryRun)
		if err != nil {
			return nil, err
		}
		e.LocalityID = localityID
	}

	slug, err := o.slugFor(ctx, c.Name, c.Kind)
	if err != nil {
		return nil, err
	}
	e.Slug = slug
	return e, nil
}

// slugFor derives the candidate's slug from its name. When a row of the
// same kind already holds the slug, that row's id is appended to force
// uniqueness (e.g. "elon-park-league-42"). This de-collides slugs; it does
// not decide whether two records describe the same real-world entity.
func (o *Orchestrator) slugFor(ctx context.Context, name string, kind record.Kind) (string, error) {
	slug := slugify.Make(name)
	if slug == "" {
		return "", fmt.Errorf("name %q produced an empty slug", name)
	}
	id, found, err := o.store.FindEntityBySlug(ctx, kind, slug)
	if err != nil {
		return "", fmt.Errorf("find slug: %w", err)
	}
	if found {
		slug = fmt.Sprintf("%s-%d", slug, id)
	}
	return slug, nil
}
