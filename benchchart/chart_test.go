// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/temporal-slab/benchviz/benchagg"
	"github.com/temporal-slab/benchviz/benchrec"
)

// testConfig returns a default config writing into a test directory,
// with warnings captured instead of printed.
func testConfig(t *testing.T) (*Config, *[]string) {
	t.Helper()
	warns := new([]string)
	cfg := DefaultConfig(t.TempDir())
	cfg.Warnf = func(format string, args ...interface{}) {
		*warns = append(*warns, fmt.Sprintf(format, args...))
	}
	return cfg, warns
}

// checkPNG verifies that art names a decodable PNG of the expected
// pixel size.
func checkPNG(t *testing.T, art *Artifact, name string, w, h int) {
	t.Helper()
	if art == nil {
		t.Fatalf("no artifact for %s", name)
	}
	if art.Name != name {
		t.Errorf("artifact name = %q, want %q", art.Name, name)
	}
	f, err := os.Open(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", art.Path, err)
	}
	if img.Width != w || img.Height != h {
		t.Errorf("%s is %dx%d px, want %dx%d", name, img.Width, img.Height, w, h)
	}
}

// checkSkipped verifies the renderer declined without error and said
// why.
func checkSkipped(t *testing.T, art *Artifact, err error, warns []string, want string) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
	if art != nil {
		t.Fatalf("got artifact %v, want skip", art)
	}
	if len(warns) != 1 || warns[0] != want {
		t.Errorf("warnings = %q, want [%q]", warns, want)
	}
}

var testSummary = benchagg.LatencySummary{
	Alloc:    benchrec.LatencyRecord{Op: "alloc", P50: 30, P95: 180, P99: 374, P999: 1137},
	Free:     benchrec.LatencyRecord{Op: "free", P50: 18, P95: 95, P99: 210, P999: 640},
	HasAlloc: true,
	HasFree:  true,
}

func TestLatencyPercentiles(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := LatencyPercentiles(cfg, testSummary)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "latency_percentiles.png", 1500, 900)
	if len(*warns) != 0 {
		t.Errorf("unexpected warnings %q", *warns)
	}
}

func TestLatencyPercentilesSkip(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := LatencyPercentiles(cfg, benchagg.LatencySummary{})
	checkSkipped(t, art, err, *warns, "No allocation latency data")
	if _, err := os.Stat(filepath.Join(cfg.OutDir, "latency_percentiles.png")); !os.IsNotExist(err) {
		t.Errorf("skip still wrote a file: %v", err)
	}
}

func TestLatencyPercentilesMissingFree(t *testing.T) {
	allocOnly := testSummary
	allocOnly.Free = benchrec.LatencyRecord{}
	allocOnly.HasFree = false

	for _, policy := range []MissingPolicy{ZeroFill, Skip} {
		t.Run(policy.String(), func(t *testing.T) {
			cfg, warns := testConfig(t)
			cfg.MissingFree = policy
			art, err := LatencyPercentiles(cfg, allocOnly)
			if err != nil {
				t.Fatal(err)
			}
			checkPNG(t, art, "latency_percentiles.png", 1500, 900)
			if len(*warns) != 0 {
				t.Errorf("unexpected warnings %q", *warns)
			}
		})
	}
}

func TestLatencyCDF(t *testing.T) {
	cfg, _ := testConfig(t)
	art, err := LatencyCDF(cfg, testSummary)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "latency_cdf.png", 1500, 900)
}

func TestLatencyCDFSkip(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := LatencyCDF(cfg, benchagg.LatencySummary{})
	checkSkipped(t, art, err, *warns, "No allocation latency data")
}

func TestLatencyCDFZeroPercentile(t *testing.T) {
	// A zero read-back cannot go on a log axis; the renderer must
	// still produce the chart.
	sum := testSummary
	sum.Alloc.P50 = 0
	cfg, _ := testConfig(t)
	art, err := LatencyCDF(cfg, sum)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "latency_cdf.png", 1500, 900)
}

var testAggs = []benchagg.SizeClassAggregate{
	{SizeClass: 64, N: 2, Requested: 88, Wasted: 30, MeanWasted: 15, MeanEfficiencyPct: 85},
	{SizeClass: 128, N: 1, Requested: 100, Wasted: 28, MeanWasted: 28, MeanEfficiencyPct: 78},
	{SizeClass: 256, N: 1, Requested: 230, Wasted: 26, MeanWasted: 26, MeanEfficiencyPct: 89.8},
}

func TestFragmentation(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := Fragmentation(cfg, testAggs)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "fragmentation.png", 2100, 750)
	if len(*warns) != 0 {
		t.Errorf("unexpected warnings %q", *warns)
	}
}

func TestFragmentationSkip(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := Fragmentation(cfg, nil)
	checkSkipped(t, art, err, *warns, "No fragmentation data found")
}

func TestFragmentationPinnedReference(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.EfficiencyRefPct = 88.9
	art, err := Fragmentation(cfg, testAggs)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "fragmentation.png", 2100, 750)
}

func TestOverallEfficiencyWeights(t *testing.T) {
	// Class means weighted by sample count recover the grand mean:
	// (85*2 + 78 + 89.8) / 4.
	got := overallEfficiency(testAggs)
	want := (85*2 + 78 + 89.8) / 4
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("overallEfficiency = %v, want %v", got, want)
	}
	if got := overallEfficiency(nil); got != 0 {
		t.Errorf("overallEfficiency(nil) = %v, want 0", got)
	}
}

var testRSS = []benchrec.RSSChurnRecord{
	{Cycle: 1, RSSMiB: 100, SlabsAllocated: 40, SlabsRecycled: 0},
	{Cycle: 2, RSSMiB: 101.1, SlabsAllocated: 40, SlabsRecycled: 38},
	{Cycle: 3, RSSMiB: 102.4, SlabsAllocated: 40, SlabsRecycled: 40},
}

func TestRSSOverTime(t *testing.T) {
	cfg, warns := testConfig(t)
	churn := benchagg.ChurnStats{InitialMiB: 100, FinalMiB: 102.4, GrowthPct: 2.4}
	art, err := RSSOverTime(cfg, testRSS, churn, true)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "rss_over_time.png", 1800, 1200)
	if len(*warns) != 0 {
		t.Errorf("unexpected warnings %q", *warns)
	}
}

func TestRSSOverTimeNoGrowthStat(t *testing.T) {
	cfg, _ := testConfig(t)
	art, err := RSSOverTime(cfg, testRSS, benchagg.ChurnStats{}, false)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "rss_over_time.png", 1800, 1200)
}

func TestRSSOverTimeSkip(t *testing.T) {
	cfg, warns := testConfig(t)
	art, err := RSSOverTime(cfg, nil, benchagg.ChurnStats{}, false)
	checkSkipped(t, art, err, *warns, "No RSS churn data found")
}

func TestSummaryCard(t *testing.T) {
	cfg, _ := testConfig(t)
	art, err := SummaryCard(cfg, DataCard(testSummary, 88.9, true))
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "summary.png", 1500, 1200)
}

func TestSummaryCardStyledContent(t *testing.T) {
	card := Card{
		Title:  "temporal-slab Performance Summary",
		Thesis: []string{"first thesis line", "second thesis line"},
		Sections: []CardSection{
			{Heading: "Latency:", Lines: []CardLine{
				{Text: "• p99: 374 ns", Highlight: true},
				{Text: "• p50: 30 ns"},
			}},
		},
	}
	cfg, _ := testConfig(t)
	art, err := SummaryCard(cfg, card)
	if err != nil {
		t.Fatal(err)
	}
	checkPNG(t, art, "summary.png", 1500, 1200)
}

func TestDataCard(t *testing.T) {
	card := DataCard(testSummary, 88.9, true)
	if card.Title != "temporal-slab Performance Summary" {
		t.Errorf("title = %q", card.Title)
	}
	if len(card.Sections) != 4 {
		t.Fatalf("got %d sections, want 4", len(card.Sections))
	}
	if got, want := card.Sections[0].Lines[0].Text, "• p50:      30 ns  (median)"; got != want {
		t.Errorf("p50 line = %q, want %q", got, want)
	}
	if got, want := card.Sections[1].Lines[0].Text, "• Average: 88.9%"; got != want {
		t.Errorf("average line = %q, want %q", got, want)
	}
	if got, want := card.Sections[1].Lines[1].Text, "• Waste:    11.1% (internal fragmentation)"; got != want {
		t.Errorf("waste line = %q, want %q", got, want)
	}
}

func TestDataCardZeroInputs(t *testing.T) {
	card := DataCard(benchagg.LatencySummary{}, 0, false)
	if got, want := card.Sections[0].Lines[0].Text, "• p50:       0 ns  (median)"; got != want {
		t.Errorf("p50 line = %q, want %q", got, want)
	}
	if got, want := card.Sections[1].Lines[1].Text, "• Waste:    100.0% (internal fragmentation)"; got != want {
		t.Errorf("waste line = %q, want %q", got, want)
	}
}

func TestNSTicks(t *testing.T) {
	labels := make(map[float64]string)
	for _, tick := range (nsTicks{}).Ticks(20, 2000) {
		if tick.Label != "" {
			labels[tick.Value] = tick.Label
		}
	}
	want := map[float64]string{100: "100ns", 1000: "1.00µs"}
	for v, label := range want {
		if labels[v] != label {
			t.Errorf("tick at %v = %q, want %q", v, labels[v], label)
		}
	}
	if len(labels) != len(want) {
		t.Errorf("labeled ticks = %v, want exactly %v", labels, want)
	}

	// A span between decades still gets endpoint labels.
	ticks := (nsTicks{}).Ticks(120, 800)
	var labeled int
	for _, tick := range ticks {
		if tick.Label != "" {
			labeled++
		}
	}
	if labeled == 0 {
		t.Error("no labeled ticks on a sub-decade range")
	}
}

func TestCountTicks(t *testing.T) {
	for _, tick := range (countTicks{}).Ticks(0, 13) {
		if tick.Label == "" {
			continue
		}
		if tick.Value != float64(int(tick.Value)) {
			t.Errorf("fractional tick %v labeled %q", tick.Value, tick.Label)
		}
		if want := fmt.Sprintf("%d", int(tick.Value)); tick.Label != want {
			t.Errorf("tick at %v = %q, want %q", tick.Value, tick.Label, want)
		}
	}
}
