// core/semsim/measures.go
package semsim

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Measure scores one term pair in [0,1]. ok=false means the pair has no
// defined similarity (no common ancestor, or zero information on both
// sides) and must be skipped by the combiner.
type Measure func(sd *SemData, a, b int) (score float64, ok bool)

// Measure identifiers follow the GOSemSim vocabulary (case-insensitive).
var measures = map[string]Measure{
	"resnik": resnik,
	"lin":    lin,
	"jiang":  jiang,
	"rel":    rel,
}

// LookupMeasure resolves a measure identifier.
func LookupMeasure(name string) (Measure, error) {
	m, ok := measures[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown similarity method %q (have %s)", name, knownKeys(measures))
	}
	return m, nil
}

// resnik is IC(MICA) scaled by the branch's maximum IC so it stays in [0,1].
func resnik(sd *SemData, a, b int) (float64, bool) {
	m, ok := sd.mica(a, b)
	if !ok || sd.maxIC == 0 {
		return 0, false
	}
	return m / sd.maxIC, true
}

func lin(sd *SemData, a, b int) (float64, bool) {
	m, ok := sd.mica(a, b)
	if !ok {
		return 0, false
	}
	denom := sd.ic[a] + sd.ic[b]
	if denom == 0 {
		return 0, false
	}
	return 2 * m / denom, true
}

// jiang converts the Jiang–Conrath distance to a similarity,
// 1 - min(1, IC(a)+IC(b)-2*IC(MICA)).
func jiang(sd *SemData, a, b int) (float64, bool) {
	m, ok := sd.mica(a, b)
	if !ok {
		return 0, false
	}
	d := sd.ic[a] + sd.ic[b] - 2*m
	if d > 1 {
		d = 1
	}
	return 1 - d, true
}

// rel is Schlicker's relevance measure: Lin weighted by 1-e^{-IC(MICA)}.
func rel(sd *SemData, a, b int) (float64, bool) {
	m, ok := sd.mica(a, b)
	if !ok {
		return 0, false
	}
	denom := sd.ic[a] + sd.ic[b]
	if denom == 0 {
		return 0, false
	}
	return (2 * m / denom) * (1 - math.Exp(-m)), true
}

func knownKeys[V any](m map[string]V) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
