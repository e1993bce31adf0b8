// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/temporal-slab/benchviz/benchagg"
	"github.com/temporal-slab/benchviz/benchunit"
)

// Fragmentation renders the per-size-class waste and efficiency
// panels side by side. It writes fragmentation.png.
func Fragmentation(cfg *Config, aggs []benchagg.SizeClassAggregate) (*Artifact, error) {
	if len(aggs) == 0 {
		cfg.warnf("No fragmentation data found")
		return nil, nil
	}

	labels := make([]string, len(aggs))
	wasted := make(plotter.Values, len(aggs))
	eff := make(plotter.Values, len(aggs))
	for i, a := range aggs {
		labels[i] = fmt.Sprintf("%dB", a.SizeClass)
		wasted[i] = float64(a.MeanWasted)
		eff[i] = a.MeanEfficiencyPct
	}
	w := vg.Points(25)

	left := plot.New()
	left.Title.Text = "Internal Fragmentation by Size Class"
	left.X.Label.Text = "Size Class"
	left.Y.Label.Text = "Average Wasted Bytes"
	left.Add(hGrid())
	wb, err := plotter.NewBarChart(wasted, w)
	if err != nil {
		return nil, err
	}
	wb.Color = steelBlue
	wb.LineStyle.Width = 0
	left.Add(wb)
	left.NominalX(labels...)

	right := plot.New()
	right.Title.Text = "Allocation Efficiency by Size Class"
	right.X.Label.Text = "Size Class"
	right.Y.Label.Text = "Space Efficiency (%)"
	right.Add(hGrid())
	eb, err := plotter.NewBarChart(eff, w)
	if err != nil {
		return nil, err
	}
	eb.Color = forestGreen
	eb.LineStyle.Width = 0
	right.Add(eb)
	right.NominalX(labels...)

	ref := cfg.EfficiencyRefPct
	if ref == 0 {
		ref = overallEfficiency(aggs)
	}
	if ref > 0 {
		ln, err := refLine(ref, -0.5, float64(len(aggs))-0.5, refRed)
		if err != nil {
			return nil, err
		}
		right.Add(ln)
		right.Legend.Add(fmt.Sprintf("Overall Avg (%s)", benchunit.Percent(ref)), ln)
	}
	right.Y.Min = 70
	right.Y.Max = 105

	return cfg.writeArtifact("fragmentation.png", 14, 5, [][]*plot.Plot{{left, right}})
}

// overallEfficiency recovers the grand mean efficiency from the
// per-class aggregates. Weighting each class mean by its sample count
// gives the same figure as averaging over the raw records.
func overallEfficiency(aggs []benchagg.SizeClassAggregate) float64 {
	var sum float64
	var n int64
	for _, a := range aggs {
		sum += a.MeanEfficiencyPct * float64(a.N)
		n += int64(a.N)
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
