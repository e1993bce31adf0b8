// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchagg derives the aggregate statistics consumed by the
// chart renderers. Derivation never mutates its inputs, so repeated
// runs over one load yield identical figures.
package benchagg

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"

	"github.com/temporal-slab/benchviz/benchrec"
)

// A SizeClassAggregate accumulates the fragmentation samples of one
// size class.
type SizeClassAggregate struct {
	SizeClass int
	N         int   // samples accumulated
	Requested int64 // total requested bytes
	Wasted    int64 // total wasted bytes

	// MeanWasted is the mean wasted bytes per sample, rounded to
	// whole bytes; MeanEfficiencyPct the mean efficiency_pct.
	MeanWasted        int64
	MeanEfficiencyPct float64
}

// BySizeClass groups fragmentation records by size class and derives
// each class's aggregate. Duplicate records for one class accumulate
// into the same aggregate; the result is sorted ascending by class so
// chart ordering is stable.
func BySizeClass(recs []benchrec.FragmentationRecord) []SizeClassAggregate {
	type accum struct {
		n         int
		requested int64
		wasted    int64
		wastedXs  []float64
		effXs     []float64
	}
	byClass := make(map[int]*accum)
	for _, r := range recs {
		a := byClass[r.SizeClass]
		if a == nil {
			a = new(accum)
			byClass[r.SizeClass] = a
		}
		a.n++
		a.requested += r.Requested
		a.wasted += r.Wasted
		a.wastedXs = append(a.wastedXs, float64(r.Wasted))
		a.effXs = append(a.effXs, r.EfficiencyPct)
	}

	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	aggs := make([]SizeClassAggregate, 0, len(classes))
	for _, c := range classes {
		a := byClass[c]
		aggs = append(aggs, SizeClassAggregate{
			SizeClass:         c,
			N:                 a.n,
			Requested:         a.requested,
			Wasted:            a.wasted,
			MeanWasted:        int64(math.Round(stats.Mean(a.wastedXs))),
			MeanEfficiencyPct: stats.Mean(a.effXs),
		})
	}
	return aggs
}

// OverallEfficiency is the mean efficiency_pct across every
// fragmentation record: the figure quoted on the summary card and, by
// default, drawn as the efficiency panel's reference line. It reports
// false when there are no records.
func OverallEfficiency(recs []benchrec.FragmentationRecord) (float64, bool) {
	if len(recs) == 0 {
		return 0, false
	}
	xs := make([]float64, len(recs))
	for i, r := range recs {
		xs[i] = r.EfficiencyPct
	}
	return stats.Mean(xs), true
}

// ChurnStats summarizes an RSS trajectory: the first and last samples
// and the growth between them.
type ChurnStats struct {
	InitialMiB float64
	FinalMiB   float64
	GrowthPct  float64
}

// RSSGrowth derives the growth statistic for an ordered RSS series.
// It reports false for an empty series or a non-positive initial
// sample; no growth figure exists then and the renderer must omit its
// reference lines rather than divide by zero.
func RSSGrowth(recs []benchrec.RSSChurnRecord) (ChurnStats, bool) {
	if len(recs) == 0 {
		return ChurnStats{}, false
	}
	initial := recs[0].RSSMiB
	final := recs[len(recs)-1].RSSMiB
	if initial <= 0 {
		return ChurnStats{}, false
	}
	return ChurnStats{
		InitialMiB: initial,
		FinalMiB:   final,
		GrowthPct:  (final - initial) / initial * 100,
	}, true
}

// A LatencySummary holds the first latency record per operation.
type LatencySummary struct {
	Alloc    benchrec.LatencyRecord
	Free     benchrec.LatencyRecord
	HasAlloc bool
	HasFree  bool
}

// SelectLatency picks the first alloc and first free record. The
// harness emits one summary row per operation; when duplicates appear
// only the first encountered is used.
func SelectLatency(recs []benchrec.LatencyRecord) LatencySummary {
	var sum LatencySummary
	sum.Alloc, sum.HasAlloc = benchrec.FirstByOp(recs, benchrec.OpAlloc)
	sum.Free, sum.HasFree = benchrec.FirstByOp(recs, benchrec.OpFree)
	return sum
}
