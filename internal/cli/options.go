// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"hpigo/internal/version"
	"hpigo/internal/writers"
)

// Options holds all CLI flags and arguments. Defaults marked "config"
// may also be supplied by --config; explicit flags win.
type Options struct {
	// Inputs
	HostFile     string
	PathogenFile string
	OBOFile      string

	// Scoring
	Ontology  string
	Method    string
	Combine   string
	Threshold float64

	// Performance
	Threads   int
	ChunkSize int64

	// Result handling
	Filter    string
	CacheAddr string // "" disables; "memory" or host:port for redis
	CacheDB   int
	CacheTTL  string // Go duration; empty means keep forever

	// Output
	Output          string
	Sort            bool
	Header          bool // true unless --no-header
	NoMatchExitCode int

	// Misc
	ConfigFile string
	Quiet      bool
	Version    bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: host-pathogen PPI prediction by GO semantic similarity

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags. Validation happens separately
// in Validate so that --config values can be overlaid first.
// The returned set records which flags were given explicitly.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, map[string]bool, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.HostFile, "host", "", "host GO-term table (CSV/TSV) [*]")
	fs.StringVar(&opt.PathogenFile, "pathogen", "", "pathogen GO-term table (CSV/TSV) [*]")
	fs.StringVar(&opt.OBOFile, "obo", "", "Gene Ontology OBO file [*]")

	// Scoring
	fs.StringVar(&opt.Ontology, "ontology", "BP", "ontology branch: BP | CC | MF [BP]")
	fs.StringVar(&opt.Method, "method", "Lin", "similarity method: Resnik | Lin | Jiang | Rel [Lin]")
	fs.StringVar(&opt.Combine, "combine", "BMA", "combination rule: max | avg | rcmax | BMA [BMA]")
	fs.Float64Var(&opt.Threshold, "threshold", 0.5, "keep pairs with score strictly above this [0.5]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "worker pool size per chunk (0 = CPUs-1) [0]")
	fs.IntVar(&opt.Threads, "t", 0, "alias of --threads")
	fs.Int64Var(&opt.ChunkSize, "chunk-size", 0, "pairs per chunk (0 = 10,000,000) [0]")

	// Result handling
	fs.StringVar(&opt.Filter, "filter", "", "CEL predicate over host/pathogen/score, e.g. 'score > 0.8'")
	fs.StringVar(&opt.CacheAddr, "cache", "", "score cache: 'memory' or redis host:port (empty = off)")
	fs.IntVar(&opt.CacheDB, "cache-db", 0, "redis database number [0]")
	fs.StringVar(&opt.CacheTTL, "cache-ttl", "", "redis entry TTL, e.g. 24h (empty = keep forever)")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | csv | json | jsonl [text]")
	fs.StringVar(&opt.Output, "o", "text", "alias of --output")
	fs.BoolVar(&opt.Sort, "sort", false, "sort rows by (Host, Pathogen) for determinism [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/csv [false]")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no pair passes the threshold [1]")

	// Misc
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run configuration file")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress and warnings [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, nil, err
	}
	if help {
		fs.Usage()
		return opt, nil, flag.ErrHelp
	}
	opt.Header = !noHeader

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opt, set, nil
}

// Validate checks the fully-overlaid options.
func Validate(opt *Options) error {
	if opt.Version {
		return nil
	}
	switch {
	case opt.HostFile == "":
		return errors.New("--host table is required")
	case opt.PathogenFile == "":
		return errors.New("--pathogen table is required")
	case opt.OBOFile == "":
		return errors.New("--obo ontology file is required")
	}
	if opt.Threshold < 0 {
		return errors.New("--threshold must be >= 0")
	}
	if opt.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	if opt.ChunkSize < 0 {
		return errors.New("--chunk-size must be >= 0")
	}
	if !writers.KnownFormat(opt.Output) {
		return fmt.Errorf("invalid --output %q", opt.Output)
	}
	return nil
}
