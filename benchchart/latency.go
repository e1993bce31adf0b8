// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/temporal-slab/benchviz/benchagg"
	"github.com/temporal-slab/benchviz/benchrec"
	"github.com/temporal-slab/benchviz/benchunit"
)

// The percentile read-backs every latency summary row carries, in
// plotting order.
var percentileNames = []string{"p50", "p95", "p99", "p999"}

func percentileValues(r benchrec.LatencyRecord) plotter.Values {
	return plotter.Values{r.P50, r.P95, r.P99, r.P999}
}

// LatencyPercentiles renders the grouped allocation and free latency
// bars with the configured threshold line. It writes
// latency_percentiles.png.
func LatencyPercentiles(cfg *Config, sum benchagg.LatencySummary) (*Artifact, error) {
	if !sum.HasAlloc {
		cfg.warnf("No allocation latency data")
		return nil, nil
	}

	p := plot.New()
	p.Title.Text = "Allocation vs Free Latency Distribution"
	p.X.Label.Text = "Percentile"
	p.Y.Label.Text = "Latency (nanoseconds)"
	p.Add(hGrid())

	w := vg.Points(20)
	alloc, err := plotter.NewBarChart(percentileValues(sum.Alloc), w)
	if err != nil {
		return nil, err
	}
	alloc.Color = steelBlue
	alloc.LineStyle.Width = 0
	alloc.Offset = -w / 2
	p.Add(alloc)
	p.Legend.Add("Allocation", alloc)

	if sum.HasFree || cfg.MissingFree == ZeroFill {
		vals := plotter.Values{0, 0, 0, 0}
		if sum.HasFree {
			vals = percentileValues(sum.Free)
		}
		free, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return nil, err
		}
		free.Color = coral
		free.LineStyle.Width = 0
		free.Offset = w / 2
		p.Add(free)
		p.Legend.Add("Free", free)
	}

	thr, err := refLine(cfg.ThresholdNs, -0.5, float64(len(percentileNames))-0.5, refRed)
	if err != nil {
		return nil, err
	}
	p.Add(thr)
	p.Legend.Add(benchunit.Nanoseconds(cfg.ThresholdNs)+" threshold", thr)

	p.NominalX(percentileNames...)
	p.Legend.Top = true
	p.Legend.Left = true

	return cfg.writeArtifact("latency_percentiles.png", 10, 6, [][]*plot.Plot{{p}})
}

// LatencyCDF renders the allocation percentile read-backs as an
// approximate cumulative distribution on a logarithmic latency axis.
// It writes latency_cdf.png.
func LatencyCDF(cfg *Config, sum benchagg.LatencySummary) (*Artifact, error) {
	if !sum.HasAlloc {
		cfg.warnf("No allocation latency data")
		return nil, nil
	}

	probs := []float64{50, 95, 99, 99.9}
	lats := percentileValues(sum.Alloc)

	p := plot.New()
	p.Title.Text = "Allocation Latency CDF (Approximation from Percentiles)"
	p.X.Label.Text = "Latency (nanoseconds)"
	p.Y.Label.Text = "Cumulative Probability (%)"
	p.Add(plotter.NewGrid())

	// A log axis needs positive values; a zero percentile read-back
	// falls back to a linear axis.
	logSafe := true
	for _, v := range lats {
		if v <= 0 {
			logSafe = false
			break
		}
	}
	if logSafe {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = nsTicks{}
	}

	xys := make(plotter.XYs, len(probs))
	for i := range probs {
		xys[i] = plotter.XY{X: lats[i], Y: probs[i]}
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.Color = steelBlue
	line.Width = vg.Points(2)
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	points.GlyphStyle.Color = steelBlue
	points.GlyphStyle.Radius = vg.Points(4)
	p.Add(line, points)

	anns := make([]string, len(probs))
	for i, name := range percentileNames {
		anns[i] = fmt.Sprintf("%s: %.0fns", name, lats[i])
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: anns})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(9)
	}
	// Keep the rightmost annotation inside the frame.
	labels.TextStyle[len(anns)-1].XAlign = draw.XRight
	p.Add(labels)

	p.Y.Min = 40
	p.Y.Max = 105

	return cfg.writeArtifact("latency_cdf.png", 10, 6, [][]*plot.Plot{{p}})
}
