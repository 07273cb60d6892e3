// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"hpigo/internal/appcore"
	"hpigo/internal/cli"
	"hpigo/internal/config"
	"hpigo/internal/version"
	"hpigo/internal/writers"
)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("hpigo")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 2
	}

	opts, set, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); writers.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "hpigo version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	if opts.ConfigFile != "" {
		f, cerr := config.Load(opts.ConfigFile)
		if cerr != nil {
			_, _ = fmt.Fprintf(stderr, "error: config: %v\n", cerr)
			return 2
		}
		f.Apply(&opts, set)
	}

	if err := cli.Validate(&opts); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	coreOpts := appcore.Options{
		HostFile: opts.HostFile, PathogenFile: opts.PathogenFile, OBOFile: opts.OBOFile,
		Ontology: opts.Ontology, Method: opts.Method, Combine: opts.Combine, Threshold: opts.Threshold,
		Threads: opts.Threads, ChunkSize: opts.ChunkSize,
		Filter: opts.Filter, CacheAddr: opts.CacheAddr, CacheDB: opts.CacheDB, CacheTTL: opts.CacheTTL,
		Output: opts.Output, Sort: opts.Sort, Header: opts.Header,
		NoMatchExitCode: opts.NoMatchExitCode,
		Quiet:           opts.Quiet,
	}
	return appcore.Run(parent, stdout, stderr, coreOpts)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
