// core/semsim/combine.go
package semsim

import (
	"fmt"
	"strings"
)

// pairScores is the per-term-pair score matrix for two term sets. Entries
// with no defined similarity are recorded as defined=false and ignored.
type pairScores struct {
	rows, cols int
	score      []float64
	defined    []bool
}

func newPairScores(rows, cols int) *pairScores {
	return &pairScores{
		rows:    rows,
		cols:    cols,
		score:   make([]float64, rows*cols),
		defined: make([]bool, rows*cols),
	}
}

func (m *pairScores) set(r, c int, s float64) {
	m.score[r*m.cols+c] = s
	m.defined[r*m.cols+c] = true
}

func (m *pairScores) at(r, c int) (float64, bool) {
	return m.score[r*m.cols+c], m.defined[r*m.cols+c]
}

// Combiner aggregates a pair-score matrix into one set-level score.
// ok=false when no entry of the matrix is defined.
type Combiner func(m *pairScores) (score float64, ok bool)

// Combiner identifiers follow the GOSemSim vocabulary (case-insensitive).
var combiners = map[string]Combiner{
	"max":   combineMax,
	"avg":   combineAvg,
	"rcmax": combineRCMax,
	"bma":   combineBMA,
}

// LookupCombiner resolves a combination-rule identifier.
func LookupCombiner(name string) (Combiner, error) {
	c, ok := combiners[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown combine rule %q (have %s)", name, knownKeys(combiners))
	}
	return c, nil
}

func combineMax(m *pairScores) (float64, bool) {
	best, found := 0.0, false
	for i, s := range m.score {
		if m.defined[i] && (!found || s > best) {
			best, found = s, true
		}
	}
	return best, found
}

func combineAvg(m *pairScores) (float64, bool) {
	sum, n := 0.0, 0
	for i, s := range m.score {
		if m.defined[i] {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// rowMaxAvg averages the per-row maxima; undefined rows are skipped.
func (m *pairScores) rowMaxAvg() (float64, bool) {
	sum, n := 0.0, 0
	for r := 0; r < m.rows; r++ {
		best, found := 0.0, false
		for c := 0; c < m.cols; c++ {
			if s, ok := m.at(r, c); ok && (!found || s > best) {
				best, found = s, true
			}
		}
		if found {
			sum += best
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (m *pairScores) colMaxAvg() (float64, bool) {
	sum, n := 0.0, 0
	for c := 0; c < m.cols; c++ {
		best, found := 0.0, false
		for r := 0; r < m.rows; r++ {
			if s, ok := m.at(r, c); ok && (!found || s > best) {
				best, found = s, true
			}
		}
		if found {
			sum += best
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// combineRCMax is the larger of the row-wise and column-wise max averages.
func combineRCMax(m *pairScores) (float64, bool) {
	r, rok := m.rowMaxAvg()
	c, cok := m.colMaxAvg()
	switch {
	case rok && cok:
		if c > r {
			return c, true
		}
		return r, true
	case rok:
		return r, true
	case cok:
		return c, true
	}
	return 0, false
}

// combineBMA is the best-match average: mean of the two max averages.
func combineBMA(m *pairScores) (float64, bool) {
	r, rok := m.rowMaxAvg()
	c, cok := m.colMaxAvg()
	if !rok || !cok {
		return 0, false
	}
	return (r + c) / 2, true
}
