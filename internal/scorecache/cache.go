// internal/scorecache/cache.go
package scorecache

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// ErrMiss is returned by Get when a key has no cached score.
var ErrMiss = errors.New("scorecache: miss")

// noScore is the stored sentinel for pairs whose similarity is undefined,
// so poisoned annotation profiles are not rescored on every run. Real
// scores are always >= 0.
const noScore = -1.0

// Cache stores pair-level similarity scores across runs. Implementations
// must be safe for concurrent use; errors degrade to recomputation and
// never fail a run.
type Cache interface {
	Name() string
	Get(ctx context.Context, key string) (float64, error)
	Put(ctx context.Context, key string, score float64) error
	Close() error
}

// Key derives a canonical cache key from the scoring configuration and
// the two term sets. Terms are sorted within each side (annotation order
// is irrelevant to the score) but the sides are kept distinct: host and
// pathogen are different roles.
func Key(method, combine string, hostTerms, pathogenTerms []string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(method)))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.ToLower(combine)))
	_, _ = h.Write([]byte{0})
	writeSide(h, hostTerms)
	_, _ = h.Write([]byte{1})
	writeSide(h, pathogenTerms)
	return fmt.Sprintf("hpigo:sim:%016x", h.Sum64())
}

func writeSide(h interface{ Write([]byte) (int, error) }, terms []string) {
	sorted := append([]string(nil), terms...)
	sort.Strings(sorted)
	for _, t := range sorted {
		_, _ = h.Write([]byte(t))
		_, _ = h.Write([]byte{0})
	}
}
