// core/pairs/pairs.go
package pairs

import "hpigo-core/goterm"

// Task is one host×pathogen candidate, fully self-contained so it can
// cross a worker boundary without shared mutable state. Term slices are
// shared read-only with the loaded records, never written.
type Task struct {
	Host          string
	HostTerms     []string
	Pathogen      string
	PathogenTerms []string
}

// List is the full host×pathogen cross product, addressed lazily by index
// in row-major order (each host paired with every pathogen, both in input
// order). Nothing of size H×P is ever materialized.
type List struct {
	Host     []goterm.Record
	Pathogen []goterm.Record
}

// Len returns H×P, the exhaustive candidate count.
func (l List) Len() int64 {
	return int64(len(l.Host)) * int64(len(l.Pathogen))
}

// Task materializes the i-th pair, 0 <= i < Len().
func (l List) Task(i int64) Task {
	p := int64(len(l.Pathogen))
	h := l.Host[i/p]
	pa := l.Pathogen[i%p]
	return Task{
		Host:          h.ID,
		HostTerms:     h.Terms,
		Pathogen:      pa.ID,
		PathogenTerms: pa.Terms,
	}
}

// Window is a contiguous half-open index range [Lo, Hi).
type Window struct {
	Lo, Hi int64
}

// Windows splits [0, total) into ordered, non-overlapping windows of at
// most size tasks. size <= 0 yields a single window covering everything.
func Windows(total, size int64) []Window {
	if total <= 0 {
		return nil
	}
	if size <= 0 || size >= total {
		return []Window{{0, total}}
	}
	ws := make([]Window, 0, (total+size-1)/size)
	for lo := int64(0); lo < total; lo += size {
		hi := lo + size
		if hi > total {
			hi = total
		}
		ws = append(ws, Window{lo, hi})
	}
	return ws
}
