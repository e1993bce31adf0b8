// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchrec classifies raw benchmark rows into typed measurement
// records.
//
// The harness emits three row shapes, discriminated by which fields are
// present: latency summaries carry op, fragmentation samples carry
// efficiency_pct without op, and RSS churn samples carry cycle and
// rss_mib. Classification and numeric parsing happen together, exactly
// once per row; downstream packages only ever see typed records.
package benchrec

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/temporal-slab/benchviz/benchcsv"
)

// Operation names of latency records as written by the harness.
const (
	OpAlloc = "alloc"
	OpFree  = "free"
)

// A Kind identifies the analysis group a row belongs to.
type Kind int

const (
	KindNone Kind = iota
	KindLatency
	KindFragmentation
	KindRSSChurn
)

func (k Kind) String() string {
	switch k {
	case KindLatency:
		return "latency"
	case KindFragmentation:
		return "fragmentation"
	case KindRSSChurn:
		return "rss_churn"
	}
	return "none"
}

// A LatencyRecord is one latency summary row: operation percentiles in
// nanoseconds, precomputed by the harness and read back here.
type LatencyRecord struct {
	Op   string
	P50  float64
	P95  float64
	P99  float64
	P999 float64
}

// A FragmentationRecord is one internal fragmentation sample for one
// size class.
type FragmentationRecord struct {
	SizeClass     int
	Requested     int64
	Wasted        int64
	EfficiencyPct float64
}

// An RSSChurnRecord is one RSS sample taken after a churn cycle.
type RSSChurnRecord struct {
	Cycle          int
	RSSMiB         float64
	SlabsAllocated int64
	SlabsRecycled  int64
}

// KindOf reports which analysis group row belongs to. The cases are
// ordered so a row lands in at most one group: op marks a latency row
// even when other discriminator fields appear alongside it.
func KindOf(row *benchcsv.Row) Kind {
	switch {
	case row.Has("op"):
		return KindLatency
	case row.Has("efficiency_pct"):
		return KindFragmentation
	case row.Has("cycle") && row.Has("rss_mib"):
		return KindRSSChurn
	}
	return KindNone
}

// A FieldError reports a required field of a classified row that was
// missing or failed its numeric parse.
type FieldError struct {
	FileName string
	Line     int
	Kind     Kind
	Field    string
	Value    string
	Err      error // nil when the field is missing entirely
}

func (e *FieldError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s:%d: missing field %s for %s record", e.FileName, e.Line, e.Field, e.Kind)
	}
	return fmt.Sprintf("%s:%d: parsing field %s %q for %s record: %v", e.FileName, e.Line, e.Field, e.Value, e.Kind, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Groups holds the classified records of one load, in input order.
type Groups struct {
	Latency       []LatencyRecord
	Fragmentation []FragmentationRecord
	RSSChurn      []RSSChurnRecord

	// Dropped counts rows that matched no group. The harness emits
	// rows this pipeline does not consume; dropping them is not an
	// error.
	Dropped int

	// Errs holds one error per classified row that failed the typed
	// parse, in input order. A group that appears in Errs must not
	// be rendered: a malformed numeric field means the harness
	// contract is broken for that whole group.
	Errs []*FieldError
}

// Err returns the first field error recorded against group k, or nil
// if the group parsed cleanly.
func (g *Groups) Err(k Kind) *FieldError {
	for _, e := range g.Errs {
		if e.Kind == k {
			return e
		}
	}
	return nil
}

// Classify partitions rows into typed analysis groups, parsing each
// row's required fields exactly once. Rows matching no group are
// counted in Dropped; rows that match a group but fail to parse are
// recorded in Errs and excluded from the group's records.
func Classify(rows []*benchcsv.Row) *Groups {
	g := new(Groups)
	for _, row := range rows {
		switch KindOf(row) {
		case KindLatency:
			rec, err := parseLatency(row)
			if err != nil {
				g.Errs = append(g.Errs, err)
				continue
			}
			g.Latency = append(g.Latency, rec)
		case KindFragmentation:
			rec, err := parseFragmentation(row)
			if err != nil {
				g.Errs = append(g.Errs, err)
				continue
			}
			g.Fragmentation = append(g.Fragmentation, rec)
		case KindRSSChurn:
			rec, err := parseRSSChurn(row)
			if err != nil {
				g.Errs = append(g.Errs, err)
				continue
			}
			g.RSSChurn = append(g.RSSChurn, rec)
		default:
			g.Dropped++
		}
	}
	return g
}

// FirstByOp returns the first record whose Op equals op. The harness
// emits one summary row per operation; later duplicates are ignored.
func FirstByOp(recs []LatencyRecord, op string) (LatencyRecord, bool) {
	for _, r := range recs {
		if r.Op == op {
			return r, true
		}
	}
	return LatencyRecord{}, false
}

func parseLatency(row *benchcsv.Row) (LatencyRecord, *FieldError) {
	p := fieldParser{row: row, kind: KindLatency}
	rec := LatencyRecord{
		Op:   p.str("op"),
		P50:  p.float("p50_ns"),
		P95:  p.float("p95_ns"),
		P99:  p.float("p99_ns"),
		P999: p.float("p999_ns"),
	}
	return rec, p.err
}

func parseFragmentation(row *benchcsv.Row) (FragmentationRecord, *FieldError) {
	p := fieldParser{row: row, kind: KindFragmentation}
	rec := FragmentationRecord{
		SizeClass:     p.int("size_class"),
		Requested:     p.int64("requested"),
		Wasted:        p.int64("wasted"),
		EfficiencyPct: p.float("efficiency_pct"),
	}
	return rec, p.err
}

func parseRSSChurn(row *benchcsv.Row) (RSSChurnRecord, *FieldError) {
	p := fieldParser{row: row, kind: KindRSSChurn}
	rec := RSSChurnRecord{
		Cycle:          p.int("cycle"),
		RSSMiB:         p.float("rss_mib"),
		SlabsAllocated: p.int64("slabs_allocated"),
		SlabsRecycled:  p.int64("slabs_recycled"),
	}
	return rec, p.err
}

// A fieldParser accumulates typed fields from one row. The first
// failure is recorded and later reads return zero values, so a parse
// function can build its whole record and check the error once.
type fieldParser struct {
	row  *benchcsv.Row
	kind Kind
	err  *FieldError
}

func (p *fieldParser) fail(field, value string, err error) {
	if p.err != nil {
		return
	}
	file, line := p.row.Pos()
	p.err = &FieldError{FileName: file, Line: line, Kind: p.kind, Field: field, Value: value, Err: err}
}

func (p *fieldParser) str(field string) string {
	v, ok := p.row.Get(field)
	if !ok {
		p.fail(field, "", nil)
	}
	return v
}

func (p *fieldParser) float(field string) float64 {
	v, ok := p.row.Get(field)
	if !ok {
		p.fail(field, "", nil)
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(field, v, numErr(err))
		return 0
	}
	return f
}

func (p *fieldParser) int(field string) int {
	v, ok := p.row.Get(field)
	if !ok {
		p.fail(field, "", nil)
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(field, v, numErr(err))
		return 0
	}
	return n
}

func (p *fieldParser) int64(field string) int64 {
	v, ok := p.row.Get(field)
	if !ok {
		p.fail(field, "", nil)
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		p.fail(field, v, numErr(err))
		return 0
	}
	return n
}

// numErr strips the strconv wrapper so diagnostics read
// `parsing p99_ns "fast" for latency record: invalid syntax`
// rather than repeating the value through the ParseFloat chain.
func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
