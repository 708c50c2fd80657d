package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/bdwalton/nesfile/nesrom"
	"github.com/bdwalton/nesfile/romfile"
)

var (
	fix     = flag.Bool("fix", false, "Correct mapper, mirroring and battery of known bad dumps.")
	toNES2  = flag.Bool("nes2", false, "Convert to the NES 2.0 header format.")
	strict  = flag.Bool("strict", false, "Reject files shorter than their header says.")
	outDir  = flag.String("out", "", "Write re-encoded ROMs to this directory.")
	workers = flag.Int("workers", runtime.NumCPU(), "Number of files to process at once.")
)

type options struct {
	fix, nes2, strict bool
	outDir            string
}

// process loads, decodes and optionally fixes, converts and saves one ROM,
// returning the summary to print.
func process(l *romfile.Loader, path string, opts options) (string, error) {
	data, err := l.Load(path)
	if err != nil {
		return "", err
	}

	decode := nesrom.FromBytes
	if opts.strict {
		decode = nesrom.FromBytesStrict
	}
	r, err := decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	var sb strings.Builder
	sb.WriteString(path + ":\n")

	if opts.fix {
		sb.WriteString(fmt.Sprintf("Corrections: %s\n", r.CorrectRom()))
	}
	if opts.nes2 {
		r.Version = nesrom.NES20
	}
	sb.WriteString(r.String())
	sb.WriteString("\n")

	if opts.outDir != "" {
		out, err := r.ToBytes()
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		dst := filepath.Join(opts.outDir, romfile.BaseName(path)+".nes")
		if err := l.Save(dst, out); err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("Wrote %s\n", dst))
	}

	return sb.String(), nil
}

type result struct {
	out string
	err error
}

// run processes paths concurrently and returns the results in the same
// order.
func run(l *romfile.Loader, paths []string, opts options, n int) []result {
	results := make([]result, len(paths))

	var g errgroup.Group
	g.SetLimit(max(1, n))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			out, err := process(l, path, opts)
			results[i] = result{out, err}
			return nil
		})
	}
	g.Wait()

	return results
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] rom...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := options{fix: *fix, nes2: *toNES2, strict: *strict, outDir: *outDir}
	l := romfile.NewLoader(afero.NewOsFs())

	failed := false
	for _, res := range run(l, flag.Args(), opts, *workers) {
		if res.err != nil {
			log.Printf("Couldn't process ROM: %v", res.err)
			failed = true
			continue
		}
		fmt.Println(res.out)
	}

	if failed {
		os.Exit(1)
	}
}
