// core/semsim/scorer.go
package semsim

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoScore marks a pair whose similarity is undefined: empty term sets,
// terms unknown to the branch, or a measure with no defined value. Callers
// exclude such pairs; they are never fatal.
var ErrNoScore = errors.New("similarity score undefined")

// Scorer computes one set-level similarity for a host/pathogen term-set
// pair. Implementations must be safe for concurrent use.
type Scorer interface {
	Score(hostTerms, pathogenTerms []string) (float64, error)
}

// GOScorer scores term sets against a shared read-only SemData using a
// named measure and combination rule.
type GOScorer struct {
	sd      *SemData
	measure Measure
	combine Combiner
}

// New resolves method/combine identifiers against the registries. Unknown
// identifiers are an initialization error, not a per-pair failure.
func New(sd *SemData, method, combine string) (*GOScorer, error) {
	m, err := LookupMeasure(method)
	if err != nil {
		return nil, err
	}
	c, err := LookupCombiner(combine)
	if err != nil {
		return nil, err
	}
	return &GOScorer{sd: sd, measure: m, combine: c}, nil
}

// Score maps both term sets into the branch, scores every term pair, and
// combines. The result is always finite and clamped to [0,1]; undefined
// similarity is reported as ErrNoScore.
func (g *GOScorer) Score(hostTerms, pathogenTerms []string) (float64, error) {
	hs := g.resolve(hostTerms)
	ps := g.resolve(pathogenTerms)
	if len(hs) == 0 || len(ps) == 0 {
		return 0, fmt.Errorf("no %s terms on one side: %w", g.sd.Branch(), ErrNoScore)
	}

	m := newPairScores(len(hs), len(ps))
	for r, a := range hs {
		for c, b := range ps {
			if s, ok := g.measure(g.sd, a, b); ok {
				m.set(r, c, s)
			}
		}
	}
	s, ok := g.combine(m)
	if !ok {
		return 0, ErrNoScore
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, ErrNoScore
	}
	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}
	return s, nil
}

// resolve maps IDs into the branch, dropping unknowns and duplicates
// (alt_ids may alias the same primary term).
func (g *GOScorer) resolve(ids []string) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		idx, ok := g.sd.Resolve(id)
		if !ok {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}
