package ingest

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/flagfootballdirectory/crawler/internal/catalog"
	"github.com/flagfootballdirectory/crawler/internal/slugify"
)

// localityResolver maps (city, state) pairs to locality identifiers,
// creating rows lazily and memoizing within a run. It is owned by one
// Orchestrator and lives for one run only; it is not thread-safe, and
// concurrent pipeline runs against the same catalog can race on the
// check-then-insert sequence below. Single-writer operation is assumed.
type localityResolver struct {
	store  catalog.Store
	logger *zap.Logger
	cache  map[string]int64
}

func newLocalityResolver(store catalog.Store, logger *zap.Logger) *localityResolver {
	return &localityResolver{
		store:  store,
		logger: logger,
		cache:  make(map[string]int64),
	}
}

// resolve returns the locality id for (city, state). On a cache miss it
// queries the catalog; when no row exists it synthesizes a slug,
// disambiguates a colliding slug with a count-derived numeric suffix (a
// heuristic, not a strict guarantee), and inserts. On a dry run nothing is
// inserted; a pseudo-id of 0 is cached so repeated references stay stable.
func (r *localityResolver) resolve(ctx context.Context, city, state string, dryRun bool) (int64, error) {
	state = strings.ToUpper(state)
	key := strings.ToLower(city) + "|" + state
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	loc, err := r.store.FindLocality(ctx, city, state)
	if err != nil {
		return 0, fmt.Errorf("find locality: %w", err)
	}
	if loc != nil {
		r.cache[key] = loc.ID
		return loc.ID, nil
	}

	slug := slugify.Make(city, state)
	n, err := r.store.CountLocalitySlug(ctx, slug)
	if err != nil {
		return 0, fmt.Errorf("count locality slug: %w", err)
	}
	if n > 0 {
		slug = fmt.Sprintf("%s-%d", slug, n+1)
	}

	if dryRun {
		r.logger.Info("dry run: would create locality",
			zap.String("city", city), zap.String("state", state), zap.String("slug", slug))
		r.cache[key] = 0
		return 0, nil
	}

	id, err := r.store.InsertLocality(ctx, &catalog.Locality{Name: city, State: state, Slug: slug})
	if err != nil {
		return 0, fmt.Errorf("insert locality: %w", err)
	}
	TotalLocalitiesCreated.Inc()
	r.logger.Info("created locality",
		zap.String("city", city), zap.String("state", state), zap.Int64("id", id))
	r.cache[key] = id
	return id, nil
}
