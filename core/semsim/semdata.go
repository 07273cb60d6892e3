// core/semsim/semdata.go
package semsim

import (
	"fmt"
	"math"
	"sort"

	"hpigo-core/goterm"
	"hpigo-core/obo"
)

// Branch selects one GO ontology branch.
type Branch string

const (
	BP Branch = "BP"
	CC Branch = "CC"
	MF Branch = "MF"
)

var branchNamespaces = map[Branch]string{
	BP: "biological_process",
	CC: "cellular_component",
	MF: "molecular_function",
}

// ParseBranch validates a branch selector string.
func ParseBranch(s string) (Branch, error) {
	b := Branch(s)
	if _, ok := branchNamespaces[b]; !ok {
		return "", fmt.Errorf("unknown ontology branch %q (want BP, CC, or MF)", s)
	}
	return b, nil
}

// SemData is the precomputed similarity index for one ontology branch:
// term index (including alt_ids), transitive ancestor closure over
// is_a/part_of, and per-term information content. Built once per run and
// shared read-only across all scoring workers; never mutated after Build.
type SemData struct {
	branch    Branch
	index     map[string]int // term ID or alt_id -> dense index
	ids       []string       // dense index -> primary ID
	parents   [][]int
	ancestors [][]int // includes self; sorted ascending
	ic        []float64
	maxIC     float64
}

// Build constructs the semantic index for branch from a parsed ontology.
// Annotation corpora (term tables) may be supplied to ground information
// content in observed term frequencies; counts are smoothed with a
// structural prior (1 + descendant count) so every in-branch term keeps a
// finite IC even when unannotated.
func Build(ont *obo.Ontology, branch Branch, corpus ...[]goterm.Record) (*SemData, error) {
	ns, ok := branchNamespaces[branch]
	if !ok {
		return nil, fmt.Errorf("unknown ontology branch %q", branch)
	}

	sd := &SemData{branch: branch, index: make(map[string]int)}
	for i := range ont.Terms {
		t := &ont.Terms[i]
		if t.Namespace != ns || t.IsObsolete {
			continue
		}
		idx := len(sd.ids)
		sd.index[t.ID] = idx
		sd.ids = append(sd.ids, t.ID)
	}
	if len(sd.ids) == 0 {
		return nil, fmt.Errorf("ontology has no %s (%s) terms", branch, ns)
	}

	// alt_ids resolve to their primary term.
	for i := range ont.Terms {
		t := &ont.Terms[i]
		idx, ok := sd.index[t.ID]
		if !ok {
			continue
		}
		for _, alt := range t.AltIDs {
			if _, taken := sd.index[alt]; !taken {
				sd.index[alt] = idx
			}
		}
	}

	sd.parents = make([][]int, len(sd.ids))
	for i := range ont.Terms {
		t := &ont.Terms[i]
		idx, ok := sd.index[t.ID]
		if !ok || sd.ids[idx] != t.ID {
			continue
		}
		for _, pid := range t.IsA {
			if p, ok := sd.index[pid]; ok {
				sd.parents[idx] = append(sd.parents[idx], p)
			}
		}
		for _, pid := range t.PartOf {
			if p, ok := sd.index[pid]; ok {
				sd.parents[idx] = append(sd.parents[idx], p)
			}
		}
	}

	if err := sd.closeAncestors(); err != nil {
		return nil, err
	}
	sd.computeIC(corpus)
	return sd, nil
}

// Branch reports which ontology branch this index was built for.
func (sd *SemData) Branch() Branch { return sd.branch }

// Len reports the number of primary terms in the branch.
func (sd *SemData) Len() int { return len(sd.ids) }

// Resolve maps a term ID (or alt_id) to its dense index.
func (sd *SemData) Resolve(id string) (int, bool) {
	idx, ok := sd.index[id]
	return idx, ok
}

// IC returns the information content of a term by dense index.
func (sd *SemData) IC(idx int) float64 { return sd.ic[idx] }

// closeAncestors computes the transitive ancestor closure (self included)
// with memoized DFS. Cycles are a malformed ontology and rejected.
func (sd *SemData) closeAncestors() error {
	n := len(sd.ids)
	sd.ancestors = make([][]int, n)
	state := make([]uint8, n) // 0 unvisited, 1 in progress, 2 done

	var visit func(int) error
	visit = func(u int) error {
		switch state[u] {
		case 1:
			return fmt.Errorf("ontology cycle through %s", sd.ids[u])
		case 2:
			return nil
		}
		state[u] = 1
		set := map[int]struct{}{u: {}}
		for _, p := range sd.parents[u] {
			if err := visit(p); err != nil {
				return err
			}
			for _, a := range sd.ancestors[p] {
				set[a] = struct{}{}
			}
		}
		anc := make([]int, 0, len(set))
		for a := range set {
			anc = append(anc, a)
		}
		sort.Ints(anc)
		sd.ancestors[u] = anc
		state[u] = 2
		return nil
	}
	for u := 0; u < n; u++ {
		if err := visit(u); err != nil {
			return err
		}
	}
	return nil
}

// computeIC derives IC = -ln(freq) where freq is the smoothed annotation
// frequency of a term or any of its descendants.
func (sd *SemData) computeIC(corpus [][]goterm.Record) {
	n := len(sd.ids)
	counts := make([]float64, n)

	// Structural prior: each term counts itself once; the count propagates
	// to every ancestor, so the prior equals 1 + descendant count.
	for u := 0; u < n; u++ {
		for _, a := range sd.ancestors[u] {
			counts[a]++
		}
	}
	for _, recs := range corpus {
		for _, rec := range recs {
			for _, id := range rec.Terms {
				u, ok := sd.index[id]
				if !ok {
					continue
				}
				for _, a := range sd.ancestors[u] {
					counts[a]++
				}
			}
		}
	}

	total := 0.0
	for u := 0; u < n; u++ {
		if counts[u] > total {
			total = counts[u]
		}
	}

	sd.ic = make([]float64, n)
	sd.maxIC = 0
	for u := 0; u < n; u++ {
		sd.ic[u] = -math.Log(counts[u] / total)
		if sd.ic[u] > sd.maxIC {
			sd.maxIC = sd.ic[u]
		}
	}
}

// mica returns the information content of the most informative common
// ancestor of a and b, or ok=false when they share none.
func (sd *SemData) mica(a, b int) (float64, bool) {
	// Both ancestor lists are sorted; intersect by merge.
	as, bs := sd.ancestors[a], sd.ancestors[b]
	best, found := 0.0, false
	i, j := 0, 0
	for i < len(as) && j < len(bs) {
		switch {
		case as[i] < bs[j]:
			i++
		case as[i] > bs[j]:
			j++
		default:
			if ic := sd.ic[as[i]]; !found || ic > best {
				best, found = ic, true
			}
			i++
			j++
		}
	}
	return best, found
}
