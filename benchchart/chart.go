// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/temporal-slab/benchviz/benchunit"
)

// An Artifact names one chart file written by a renderer.
type Artifact struct {
	Name string // fixed file name, e.g. "latency_percentiles.png"
	Path string // full path under the configured output directory
}

// The chart palette. Allocation series are steel blue, free and churn
// series coral, efficiency and recycling series forest green.
var (
	steelBlue   = color.RGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}
	coral       = color.RGBA{R: 0xff, G: 0x7f, B: 0x50, A: 0xff}
	forestGreen = color.RGBA{R: 0x22, G: 0x8b, B: 0x22, A: 0xff}
	refRed      = color.RGBA{R: 0xff, A: 0xff}
	refGreen    = color.RGBA{G: 0x80, A: 0xff}
)

// writeArtifact tiles plots onto one canvas and writes OutDir/name.
// The grid of plots is row-major; a nil entry leaves its tile blank.
// The canvas and the file handle live only for the duration of the
// call.
func (c *Config) writeArtifact(name string, wIn, hIn float64, plots [][]*plot.Plot) (*Artifact, error) {
	rows := len(plots)
	cols := 0
	for _, r := range plots {
		if len(r) > cols {
			cols = len(r)
		}
	}

	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(wIn)*vg.Inch, vg.Length(hIn)*vg.Inch),
		vgimg.UseDPI(c.DPI),
		vgimg.UseBackgroundColor(color.White))}

	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 5, PadY: vg.Millimeter * 5,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, draw.New(can))
	for i, row := range plots {
		for j, pl := range row {
			if pl != nil {
				pl.Draw(canvases[i][j])
			}
		}
	}

	os.MkdirAll(c.OutDir, 0777)
	path := filepath.Join(c.OutDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return &Artifact{Name: name, Path: path}, nil
}

// hGrid returns the horizontal-only grid used behind bar charts.
func hGrid() *plotter.Grid {
	g := plotter.NewGrid()
	g.Vertical.Color = nil
	return g
}

// refLine builds a dashed horizontal reference line spanning
// [xmin, xmax] at height y.
func refLine(y, xmin, xmax float64, clr color.Color) (*plotter.Line, error) {
	ln, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: y}, {X: xmax, Y: y}})
	if err != nil {
		return nil, err
	}
	ln.Color = clr
	ln.Width = vg.Points(1)
	ln.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	return ln, nil
}

// nsTicks labels whole decades of a logarithmic nanosecond axis with
// scaled duration strings and marks the in-between multiples as minor
// ticks.
type nsTicks struct{}

func (nsTicks) Ticks(min, max float64) []plot.Tick {
	if min <= 0 || max <= min {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); e <= math.Ceil(math.Log10(max)); e++ {
		d := math.Pow(10, e)
		if d >= min && d <= max {
			ticks = append(ticks, plot.Tick{Value: d, Label: benchunit.Nanoseconds(d)})
		}
		for m := 2.0; m < 10; m++ {
			if v := m * d; v >= min && v <= max {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	for _, t := range ticks {
		if t.Label != "" {
			return ticks
		}
	}
	// No decade falls inside the range; label the endpoints so the
	// axis still reads.
	return []plot.Tick{
		{Value: min, Label: benchunit.Nanoseconds(min)},
		{Value: max, Label: benchunit.Nanoseconds(max)},
	}
}

// countTicks labels an axis of whole-number quantities. Fractional
// default ticks become unlabeled minors so a short integer range does
// not read "12.5 slabs".
type countTicks struct{}

func (countTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label == "" {
			continue
		}
		if t.Value != math.Trunc(t.Value) {
			ticks[i].Label = ""
			continue
		}
		ticks[i].Label = benchunit.Count(t.Value)
	}
	return ticks
}
