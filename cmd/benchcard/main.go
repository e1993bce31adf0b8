// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchcard writes the static temporal-slab performance summary card.
//
// Usage:
//
//	benchcard [-output dir]
//
// The card presents the headline figures from the published benchmark
// runs and takes no input files; benchplot derives the same card from
// fresh CSV data instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/temporal-slab/benchviz/benchchart"
)

func main() {
	log.SetPrefix("benchcard: ")
	log.SetFlags(0)
	if err := benchcard(os.Stdout, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func benchcard(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("benchcard", flag.ContinueOnError)
	outputDir := fs.String("output", "docs/images", "directory receiving summary.png")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := benchchart.DefaultConfig(*outputDir)
	art, err := benchchart.SummaryCard(cfg, staticCard())
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Generated: %s\n", art.Path)
	return nil
}

// staticCard holds the published headline figures. The latency and
// RSS numbers come from the harness runs recorded in docs/results.md;
// they are presentation copy, not derived data.
func staticCard() benchchart.Card {
	return benchchart.Card{
		Title: "temporal-slab Performance Summary",
		Thesis: []string{
			"temporal-slab eliminates allocator-induced latency spikes and RSS drift",
			"in churn-heavy, fixed-size workloads by aligning allocation with lifetime phases.",
		},
		Sections: []benchchart.CardSection{
			{Heading: "Allocation Latency:", Lines: []benchchart.CardLine{
				{Text: "• p50:    30 ns     (median)"},
				{Text: "• p99:    374 ns    (3.3× better than malloc)", Highlight: true},
				{Text: "• p99.9:  1137 ns   (4.7× better than malloc)", Highlight: true},
				{Text: "• Variance: 19.6× (vs malloc 110.8×)"},
			}},
			{Heading: "RSS Stability:", Lines: []benchchart.CardLine{
				{Text: "• Steady-state churn: 0% growth (100 cycles)", Highlight: true},
				{Text: "• Long-term churn:    2.4% growth (1000 cycles)"},
				{Text: "• Baseline RSS:       +37% vs malloc (explicit trade-off)"},
			}},
			{Heading: "Epoch-Scoped RSS Reclamation:", Lines: []benchchart.CardLine{
				{Text: "• API: epoch_close() defines lifetime boundaries"},
				{Text: "• Mechanism: madvise(MADV_DONTNEED) on empty slabs"},
				{Text: "• Result: 19.15 MiB reclaimable, 100% slab reuse, 0 new mmap calls", Highlight: true},
			}},
			{Heading: "Memory Efficiency (Normalized):", Lines: []benchchart.CardLine{
				{Text: "• Average: 88.9% (11.1% internal fragmentation)"},
				{Text: "• Waste:   Comparable to malloc (15-25%)"},
			}},
			{Heading: "Key Properties:", Lines: []benchchart.CardLine{
				{Text: "✓ O(1) deterministic class selection"},
				{Text: "✓ Lock-free allocation fast path"},
				{Text: "✓ Safe handle validation (no crashes)"},
				{Text: "✓ Application-controlled reclamation"},
			}},
			{Heading: "Target Workloads:", Lines: []benchchart.CardLine{
				{Text: "• Request-scoped allocation (web servers, RPC)"},
				{Text: "• Frame-based systems (games, simulations)"},
				{Text: "• Cache metadata, session stores, connection tracking"},
				{Text: "• Fixed-size, churn-heavy allocation patterns"},
			}},
		},
	}
}
