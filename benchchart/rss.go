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

// RSSOverTime renders the RSS trajectory and the slab lifecycle as
// two stacked panels sharing the cycle axis. The churn reference
// lines are drawn only when hasChurn is true. It writes
// rss_over_time.png.
func RSSOverTime(cfg *Config, recs []benchrec.RSSChurnRecord, churn benchagg.ChurnStats, hasChurn bool) (*Artifact, error) {
	if len(recs) == 0 {
		cfg.warnf("No RSS churn data found")
		return nil, nil
	}

	rssXY := make(plotter.XYs, len(recs))
	allocXY := make(plotter.XYs, len(recs))
	recycXY := make(plotter.XYs, len(recs))
	for i, r := range recs {
		x := float64(r.Cycle)
		rssXY[i] = plotter.XY{X: x, Y: r.RSSMiB}
		allocXY[i] = plotter.XY{X: x, Y: float64(r.SlabsAllocated)}
		recycXY[i] = plotter.XY{X: x, Y: float64(r.SlabsRecycled)}
	}

	top := plot.New()
	top.Title.Text = "RSS Stability Under Sustained Churn"
	top.X.Label.Text = "Churn Cycle"
	top.Y.Label.Text = "RSS (MiB)"
	top.Add(plotter.NewGrid())

	rssLine, rssPts, err := plotter.NewLinePoints(rssXY)
	if err != nil {
		return nil, err
	}
	rssLine.Color = steelBlue
	rssLine.Width = vg.Points(2)
	rssPts.GlyphStyle.Shape = draw.CircleGlyph{}
	rssPts.GlyphStyle.Color = steelBlue
	rssPts.GlyphStyle.Radius = vg.Points(1.5)
	top.Add(rssLine, rssPts)

	if hasChurn {
		xmin := float64(recs[0].Cycle)
		xmax := float64(recs[len(recs)-1].Cycle)
		ini, err := refLine(churn.InitialMiB, xmin, xmax, refGreen)
		if err != nil {
			return nil, err
		}
		fin, err := refLine(churn.FinalMiB, xmin, xmax, refRed)
		if err != nil {
			return nil, err
		}
		top.Add(ini, fin)
		top.Legend.Add("Initial: "+benchunit.Mebibytes(churn.InitialMiB), ini)
		top.Legend.Add(fmt.Sprintf("Final: %s (%s)",
			benchunit.Mebibytes(churn.FinalMiB), benchunit.SignedPercent(churn.GrowthPct)), fin)
		top.Legend.Top = true
		top.Legend.Left = true
	}

	bottom := plot.New()
	bottom.Title.Text = "Slab Lifecycle (Allocation vs Recycling)"
	bottom.X.Label.Text = "Churn Cycle"
	bottom.Y.Label.Text = "Slab Count"
	bottom.Y.Tick.Marker = countTicks{}
	bottom.Add(plotter.NewGrid())

	aLine, aPts, err := plotter.NewLinePoints(allocXY)
	if err != nil {
		return nil, err
	}
	aLine.Color = coral
	aLine.Width = vg.Points(2)
	aPts.GlyphStyle.Shape = draw.BoxGlyph{}
	aPts.GlyphStyle.Color = coral
	aPts.GlyphStyle.Radius = vg.Points(1.5)

	rLine, rPts, err := plotter.NewLinePoints(recycXY)
	if err != nil {
		return nil, err
	}
	rLine.Color = forestGreen
	rLine.Width = vg.Points(2)
	rPts.GlyphStyle.Shape = draw.PyramidGlyph{}
	rPts.GlyphStyle.Color = forestGreen
	rPts.GlyphStyle.Radius = vg.Points(1.5)

	bottom.Add(aLine, aPts, rLine, rPts)
	bottom.Legend.Add("Slabs Allocated", aLine, aPts)
	bottom.Legend.Add("Slabs Recycled", rLine, rPts)
	bottom.Legend.Top = true
	bottom.Legend.Left = true

	return cfg.writeArtifact("rss_over_time.png", 12, 8, [][]*plot.Plot{{top}, {bottom}})
}
