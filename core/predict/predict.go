// core/predict/predict.go
package predict

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hpigo-core/pairs"
	"hpigo-core/semsim"
)

// DefaultChunkSize bounds how many candidate pairs are in flight per
// chunk; realistic proteome crosses reach tens of millions of pairs.
const DefaultChunkSize = 10_000_000

// Interaction is one predicted PPI: a host/pathogen pair whose similarity
// exceeded the threshold.
type Interaction struct {
	Host       string
	Pathogen   string
	HostGO     []string
	PathogenGO []string
	Score      float64
}

// Report summarizes a completed run.
type Report struct {
	Pairs   int64 // candidate pairs generated (H×P)
	Chunks  int   // chunks processed
	Kept    int64 // interactions above threshold
	Skipped int64 // pairs excluded for undefined scores or worker faults
}

// Config controls one prediction run.
type Config struct {
	Threshold float64 // keep score > Threshold (strict)
	ChunkSize int64   // pairs per chunk; <=0 means DefaultChunkSize
	Workers   int     // pool size per chunk; <=0 means max(1, NumCPU-1)

	// Progress, when non-nil, is called from the orchestrator goroutine
	// before each chunk is dispatched.
	Progress func(chunk, chunks int)
}

// Engine runs the exhaustive cross-product scan: chunks are processed
// strictly sequentially, pairs within a chunk are scored by a fixed
// worker pool, and the pool fully drains before the next chunk starts.
type Engine struct {
	scorer semsim.Scorer
	cfg    Config
}

func New(scorer semsim.Scorer, cfg Config) *Engine {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU() - 1
		if cfg.Workers < 1 {
			cfg.Workers = 1
		}
	}
	return &Engine{scorer: scorer, cfg: cfg}
}

// Run scores every host×pathogen pair and calls visit for each kept
// interaction. visit runs on the orchestrator goroutine between chunks;
// within-chunk collection order is scheduling-dependent. A visit error or
// context cancellation aborts the run; per-pair scoring failures (and
// worker panics) only increment Report.Skipped.
func (e *Engine) Run(ctx context.Context, list pairs.List, visit func(Interaction) error) (Report, error) {
	rep := Report{Pairs: list.Len()}

	windows := pairs.Windows(rep.Pairs, e.cfg.ChunkSize)
	for _, w := range windows {
		if e.cfg.Progress != nil {
			e.cfg.Progress(rep.Chunks+1, len(windows))
		}
		kept, skipped, err := e.runChunk(ctx, list, w)
		rep.Chunks++
		rep.Skipped += skipped
		if err != nil {
			return rep, err
		}
		for _, it := range kept {
			if err := visit(it); err != nil {
				return rep, err
			}
			rep.Kept++
		}
	}
	if err := ctx.Err(); err != nil {
		return rep, err
	}
	return rep, nil
}

// runChunk drains one window with a fixed pool of workers pulling indices
// from a shared cursor. The kept slice is released to the caller so no
// worker state survives the chunk.
func (e *Engine) runChunk(ctx context.Context, list pairs.List, w pairs.Window) ([]Interaction, int64, error) {
	var (
		mu      sync.Mutex
		kept    []Interaction
		skipped atomic.Int64
		cursor  atomic.Int64
	)
	cursor.Store(w.Lo)

	eg, ctx := errgroup.WithContext(ctx)
	for k := 0; k < e.cfg.Workers; k++ {
		eg.Go(func() error {
			for {
				i := cursor.Add(1) - 1
				if i >= w.Hi {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				it, keep, failed := e.scoreOne(list.Task(i))
				if failed {
					skipped.Add(1)
					continue
				}
				if !keep {
					continue
				}
				mu.Lock()
				kept = append(kept, it)
				mu.Unlock()
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, skipped.Load(), err
	}
	return kept, skipped.Load(), nil
}

// scoreOne isolates a single scoring call: an undefined score or a panic
// inside a scorer reduces to "no result" so the chunk always drains.
func (e *Engine) scoreOne(t pairs.Task) (it Interaction, keep, failed bool) {
	defer func() {
		if recover() != nil {
			it, keep, failed = Interaction{}, false, true
		}
	}()
	s, err := e.scorer.Score(t.HostTerms, t.PathogenTerms)
	if err != nil {
		return Interaction{}, false, true
	}
	if s <= e.cfg.Threshold {
		return Interaction{}, false, false
	}
	return Interaction{
		Host:       t.Host,
		Pathogen:   t.Pathogen,
		HostGO:     t.HostTerms,
		PathogenGO: t.PathogenTerms,
		Score:      s,
	}, true, false
}
