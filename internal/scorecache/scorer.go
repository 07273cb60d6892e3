// internal/scorecache/scorer.go
package scorecache

import (
	"context"
	"errors"

	"hpigo-core/semsim"
)

// CachedScorer wraps a semsim.Scorer with a Cache. Undefined scores are
// cached too (as a sentinel) so the same failing pair is not rescored on
// every run. Cache errors fall through to the inner scorer.
type CachedScorer struct {
	ctx     context.Context // run-scoped; Scorer has no per-call context
	inner   semsim.Scorer
	cache   Cache
	method  string
	combine string
}

func NewCachedScorer(ctx context.Context, inner semsim.Scorer, cache Cache, method, combine string) *CachedScorer {
	return &CachedScorer{ctx: ctx, inner: inner, cache: cache, method: method, combine: combine}
}

func (c *CachedScorer) Score(hostTerms, pathogenTerms []string) (float64, error) {
	key := Key(c.method, c.combine, hostTerms, pathogenTerms)
	if v, err := c.cache.Get(c.ctx, key); err == nil {
		if v == noScore {
			return 0, semsim.ErrNoScore
		}
		return v, nil
	}

	s, err := c.inner.Score(hostTerms, pathogenTerms)
	switch {
	case err == nil:
		_ = c.cache.Put(c.ctx, key, s)
	case errors.Is(err, semsim.ErrNoScore):
		_ = c.cache.Put(c.ctx, key, noScore)
	}
	return s, err
}
