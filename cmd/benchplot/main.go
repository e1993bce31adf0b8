// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchplot renders temporal-slab benchmark results as PNG charts.
//
// Usage:
//
//	benchplot [-input dir] [-output dir] [-config file] [-missing-free mode]
//
// Benchplot reads every *.csv file the harness wrote under the input
// directory, classifies the rows into latency, fragmentation, and RSS
// churn groups, and writes one chart per populated group plus a
// summary card:
//
//	latency_percentiles.png
//	latency_cdf.png
//	fragmentation.png
//	rss_over_time.png
//	summary.png
//
// Progress goes to standard output, diagnostics to standard error. A
// group whose rows fail to parse is reported and withheld; the other
// charts are still generated and the run exits 0. Exit status is 1
// when there is nothing to plot at all and 2 for usage errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/temporal-slab/benchviz/benchagg"
	"github.com/temporal-slab/benchviz/benchchart"
	"github.com/temporal-slab/benchviz/benchcsv"
	"github.com/temporal-slab/benchviz/benchrec"
)

var usageMessage = `usage: benchplot [options]

benchplot reads temporal-slab benchmark CSV files and writes PNG
charts. Options:

	-input dir
		directory searched for *.csv files (default benchmarks/results)
	-output dir
		directory receiving the PNG artifacts (default docs/images)
	-config file
		YAML chart configuration overlay
	-missing-free mode
		free-series handling when no free latency row exists:
		zero or skip (default zero)
`

var (
	// errReported marks a failure already described on the error
	// stream.
	errReported = errors.New("error already reported")
	// errUsage marks a command-line mistake.
	errUsage = errors.New("usage error")
)

func main() {
	log.SetPrefix("benchplot: ")
	log.SetFlags(0)

	switch err := benchplot(os.Stdout, os.Stderr, os.Args[1:]); {
	case err == nil:
	case errors.Is(err, errUsage):
		os.Exit(2)
	case errors.Is(err, errReported):
		os.Exit(1)
	default:
		log.Print(err)
		os.Exit(1)
	}
}

// benchplot runs the whole pipeline, writing progress to w and
// diagnostics to wErr.
func benchplot(w, wErr io.Writer, args []string) error {
	fs := flag.NewFlagSet("benchplot", flag.ContinueOnError)
	fs.SetOutput(wErr)
	fs.Usage = func() { fmt.Fprint(wErr, usageMessage) }
	inputDir := fs.String("input", "benchmarks/results", "directory searched for *.csv files")
	outputDir := fs.String("output", "docs/images", "directory receiving the PNG artifacts")
	configPath := fs.String("config", "", "YAML chart configuration `file`")
	missingFree := fs.String("missing-free", "", "free-series handling: zero or skip")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(wErr, "benchplot: unexpected arguments %q\n", fs.Args())
		fs.Usage()
		return errUsage
	}

	cfg := benchchart.DefaultConfig(*outputDir)
	cfg.Warnf = func(format string, args ...interface{}) {
		fmt.Fprintf(wErr, format+"\n", args...)
	}
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			return err
		}
	}
	if *missingFree != "" {
		p, err := benchchart.ParseMissingPolicy(*missingFree)
		if err != nil {
			fmt.Fprintf(wErr, "benchplot: %v\n", err)
			fs.Usage()
			return errUsage
		}
		cfg.MissingFree = p
	}

	if err := os.MkdirAll(*outputDir, 0777); err != nil {
		return err
	}

	paths, err := benchcsv.Discover(*inputDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(wErr, "No CSV files found in %s\n", *inputDir)
		fmt.Fprintln(wErr, "Run benchmarks first with --csv flag")
		return errReported
	}
	fmt.Fprintf(w, "Found %d CSV file(s) in %s\n", len(paths), *inputDir)

	files := benchcsv.Files{
		Paths: paths,
		Progress: func(path string) {
			fmt.Fprintf(w, "Loading %s...\n", filepath.Base(path))
		},
	}
	var rows []*benchcsv.Row
	for files.Scan() {
		rows = append(rows, files.Row())
	}
	if err := files.Err(); err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(wErr, "No data loaded")
		return errReported
	}

	g := benchrec.Classify(rows)
	fmt.Fprintf(w, "Loaded %d latency rows, %d fragmentation rows, %d RSS samples\n",
		len(g.Latency), len(g.Fragmentation), len(g.RSSChurn))

	// A parse failure poisons its whole group: the harness contract
	// is broken there, so its charts are withheld while the clean
	// groups proceed.
	latency, frag, rss := g.Latency, g.Fragmentation, g.RSSChurn
	for _, k := range []benchrec.Kind{benchrec.KindLatency, benchrec.KindFragmentation, benchrec.KindRSSChurn} {
		if err := g.Err(k); err != nil {
			fmt.Fprintf(wErr, "%v\n", err)
			fmt.Fprintf(wErr, "Skipping %s charts\n", k)
			switch k {
			case benchrec.KindLatency:
				latency = nil
			case benchrec.KindFragmentation:
				frag = nil
			case benchrec.KindRSSChurn:
				rss = nil
			}
		}
	}

	fmt.Fprintln(w, "\nGenerating visualizations...")

	report := func(art *benchchart.Artifact, err error) error {
		if err != nil {
			return err
		}
		if art != nil {
			fmt.Fprintf(w, "Generated: %s\n", art.Path)
		}
		return nil
	}

	sum := benchagg.SelectLatency(latency)
	if len(latency) > 0 {
		if err := report(benchchart.LatencyPercentiles(cfg, sum)); err != nil {
			return err
		}
		if err := report(benchchart.LatencyCDF(cfg, sum)); err != nil {
			return err
		}
	}
	if len(frag) > 0 {
		if err := report(benchchart.Fragmentation(cfg, benchagg.BySizeClass(frag))); err != nil {
			return err
		}
	}
	if len(rss) > 0 {
		churn, ok := benchagg.RSSGrowth(rss)
		if err := report(benchchart.RSSOverTime(cfg, rss, churn, ok)); err != nil {
			return err
		}
	}
	if len(latency) > 0 || len(frag) > 0 {
		eff, okEff := benchagg.OverallEfficiency(frag)
		if err := report(benchchart.SummaryCard(cfg, benchchart.DataCard(sum, eff, okEff))); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n✓ All charts generated in %s\n", *outputDir)
	fmt.Fprintln(w, "\nNext step: Add charts to docs/results.md")
	return nil
}
