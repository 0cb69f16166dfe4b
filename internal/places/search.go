package places

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/neexbeast/tourist-routes/internal/catalog"
)

// CatalogSource provides the local spot catalog.
type CatalogSource interface {
	Load() []catalog.Spot
}

// ExternalSource provides externally discovered places.
type ExternalSource interface {
	Search(ctx context.Context, query string) []Place
}

// ResultCache stores external search results keyed by query. A nil
// result from Get means a miss.
type ResultCache interface {
	Get(ctx context.Context, query string) ([]Place, error)
	Set(ctx context.Context, query string, results []Place) error
}

// Searcher merges local catalog matches with external search results.
type Searcher struct {
	catalog  CatalogSource
	external ExternalSource
	cache    ResultCache
	log      *slog.Logger
}

// NewSearcher constructs a Searcher. cache may be nil, in which case
// every query hits the external service.
func NewSearcher(cat CatalogSource, ext ExternalSource, cache ResultCache, log *slog.Logger) *Searcher {
	return &Searcher{catalog: cat, external: ext, cache: cache, log: log}
}

// Search runs the local and external lookups in parallel and merges
// them: local results first, then external, de-duplicated by
// case-insensitive name with the first occurrence winning.
func (s *Searcher) Search(ctx context.Context, query string) []Place {
	var local, external []Place

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		local = s.searchLocal(query)
		return nil
	})
	g.Go(func() error {
		external = s.searchExternal(gCtx, query)
		return nil
	})
	_ = g.Wait()

	seen := make(map[string]struct{}, len(local)+len(external))
	merged := make([]Place, 0, len(local)+len(external))
	for _, p := range append(local, external...) {
		key := strings.ToLower(p.Nome)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, p)
	}
	return merged
}

// searchLocal matches catalog spots by substring on name or
// description, case-insensitively.
func (s *Searcher) searchLocal(query string) []Place {
	q := strings.ToLower(query)
	var out []Place
	for _, spot := range s.catalog.Load() {
		if strings.Contains(strings.ToLower(spot.Nome), q) ||
			(spot.Descricao != "" && strings.Contains(strings.ToLower(spot.Descricao), q)) {
			out = append(out, Place{
				ID:          strconv.Itoa(spot.ID),
				Nome:        spot.Nome,
				Descricao:   spot.Descricao,
				Localizacao: spot.Localizacao,
				ImagemURL:   spot.ImagemURL,
			})
		}
	}
	return out
}

// searchExternal consults the cache before the external service. Cache
// failures are logged and fall through to a direct fetch.
func (s *Searcher) searchExternal(ctx context.Context, query string) []Place {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, query)
		if err != nil {
			s.log.Warn("place cache get failed", "query", query, "err", err)
		}
		if cached != nil {
			return cached
		}
	}

	results := s.external.Search(ctx, query)

	if s.cache != nil && results != nil {
		if err := s.cache.Set(ctx, query, results); err != nil {
			s.log.Warn("place cache set failed", "query", query, "err", err)
		}
	}
	return results
}
