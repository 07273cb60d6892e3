// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"hpigo-core/goterm"
	"hpigo-core/obo"
	"hpigo-core/pairs"
	"hpigo-core/predict"
	"hpigo-core/semsim"
	"hpigo/internal/cmdutil"
	"hpigo/internal/filter"
	"hpigo/internal/scorecache"
	"hpigo/internal/writers"
)

// Options is the fully-resolved run configuration (flags + config file).
type Options struct {
	HostFile     string
	PathogenFile string
	OBOFile      string

	Ontology  string
	Method    string
	Combine   string
	Threshold float64

	Threads   int
	ChunkSize int64

	Filter    string
	CacheAddr string
	CacheDB   int
	CacheTTL  string

	Output          string
	Sort            bool
	Header          bool
	NoMatchExitCode int

	Quiet bool
}

// Run executes one prediction run end to end. Exit codes follow the CLI
// contract: 0 results written, NoMatchExitCode when nothing passed the
// threshold, 2 for initialization failures, 3 for I/O failures, 130 on
// cancellation.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	outw := bufio.NewWriter(stdout)

	// Initialization phase: any failure here is fatal, before pairing.
	host, err := goterm.Load(o.HostFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: load host table: %v\n", err)
		return 2
	}
	pathogen, err := goterm.Load(o.PathogenFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: load pathogen table: %v\n", err)
		return 2
	}
	if len(host) == 0 {
		cmdutil.Warnf(stderr, o.Quiet, "host table %s has no annotated proteins", o.HostFile)
	}
	if len(pathogen) == 0 {
		cmdutil.Warnf(stderr, o.Quiet, "pathogen table %s has no annotated proteins", o.PathogenFile)
	}

	branch, err := semsim.ParseBranch(o.Ontology)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	ont, err := obo.ParseFile(o.OBOFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: load ontology: %v\n", err)
		return 2
	}
	sem, err := semsim.Build(ont, branch, host, pathogen)
	if err != nil {
		fmt.Fprintf(stderr, "error: build %s semantic data from %s: %v\n", o.Ontology, o.OBOFile, err)
		return 2
	}

	var scorer semsim.Scorer
	scorer, err = semsim.New(sem, o.Method, o.Combine)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	cache, code := openCache(stderr, o)
	if code != 0 {
		return code
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
		scorer = scorecache.NewCachedScorer(ctx, scorer, cache, o.Method, o.Combine)
	}

	var rowFilter *filter.Expr
	if o.Filter != "" {
		rowFilter, err = filter.Compile(o.Filter)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 2
		}
	}

	runID := uuid.NewString()
	start := time.Now()
	cmdutil.Infof(stderr, o.Quiet, "run %s: %d host x %d pathogen proteins, %s/%s/%s",
		runID, len(host), len(pathogen), o.Ontology, o.Method, o.Combine)

	thr := o.Threads
	inCh, writeErr := writers.StartResultWriter(outw, o.Output, o.Sort, o.Header, bufSize(thr))

	eng := predict.New(scorer, predict.Config{
		Threshold: o.Threshold,
		ChunkSize: o.ChunkSize,
		Workers:   thr,
		Progress: func(chunk, chunks int) {
			if chunks > 1 {
				cmdutil.Infof(stderr, o.Quiet, "processing chunk %d/%d", chunk, chunks)
			}
		},
	})

	var (
		written      int64
		filterWarned bool
	)
	rep, perr := eng.Run(ctx, pairs.List{Host: host, Pathogen: pathogen}, func(it predict.Interaction) error {
		if rowFilter != nil {
			keep, ferr := rowFilter.Keep(it)
			if ferr != nil {
				if !filterWarned {
					cmdutil.Warnf(stderr, o.Quiet, "filter expression failed, dropping rows: %v", ferr)
					filterWarned = true
				}
				return nil
			}
			if !keep {
				return nil
			}
		}
		select {
		case inCh <- it:
			written++
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}

	cmdutil.Infof(stderr, o.Quiet, "run %s: %d pairs in %d chunks, %d kept, %d skipped (%s)",
		runID, rep.Pairs, rep.Chunks, written, rep.Skipped, time.Since(start).Round(time.Millisecond))

	if written == 0 {
		return o.NoMatchExitCode
	}
	return 0
}

func openCache(stderr io.Writer, o Options) (scorecache.Cache, int) {
	switch o.CacheAddr {
	case "":
		return nil, 0
	case "memory":
		return scorecache.NewMemory(), 0
	}
	var ttl time.Duration
	if o.CacheTTL != "" {
		d, err := time.ParseDuration(o.CacheTTL)
		if err != nil {
			fmt.Fprintf(stderr, "error: invalid --cache-ttl %q: %v\n", o.CacheTTL, err)
			return nil, 2
		}
		ttl = d
	}
	c, err := scorecache.NewRedis(o.CacheAddr, o.CacheDB, ttl)
	if err != nil {
		fmt.Fprintf(stderr, "error: score cache %s: %v\n", o.CacheAddr, err)
		return nil, 2
	}
	return c, 0
}

func bufSize(threads int) int {
	if threads <= 0 {
		return 64
	}
	return threads * 4
}
