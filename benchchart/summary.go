// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"fmt"
	"image/color"
	"strings"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/temporal-slab/benchviz/benchagg"
)

// A CardLine is one body line of a summary card section.
type CardLine struct {
	Text      string
	Highlight bool // drawn bold in highlight green
}

// A CardSection is a bold heading followed by indented body lines.
type CardSection struct {
	Heading string
	Lines   []CardLine
}

// A Card is the content of a text-only summary artifact: a title over
// an = rule, optional italic thesis lines, then monospace sections.
type Card struct {
	Title    string
	Thesis   []string
	Sections []CardSection
}

var (
	highlightGreen = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	thesisSlate    = color.RGBA{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff}
	cardEdge       = color.RGBA{R: 0x7f, G: 0x8c, B: 0x8d, A: 0xff}
	cardFill       = color.NRGBA{R: 0xf5, G: 0xde, B: 0xb3, A: 0x4d} // wheat tint
)

// cardStyle carries the per-line text styling applied after the card
// labels are built.
type cardStyle struct {
	size   vg.Length
	bold   bool
	italic bool
	sans   bool
	center bool
	color  color.Color
}

// DataCard assembles the summary card from the loaded benchmark data.
// Missing inputs render as zeroes, matching the harness convention
// for partial runs.
func DataCard(sum benchagg.LatencySummary, eff float64, hasEff bool) Card {
	if !hasEff {
		eff = 0
	}
	alloc := sum.Alloc
	return Card{
		Title: "temporal-slab Performance Summary",
		Sections: []CardSection{
			{Heading: "Allocation Latency:", Lines: []CardLine{
				{Text: fmt.Sprintf("• p50:  %6.0f ns  (median)", alloc.P50)},
				{Text: fmt.Sprintf("• p99:  %6.0f ns  (tail latency)", alloc.P99)},
				{Text: fmt.Sprintf("• p999: %6.0f ns  (worst case in 1000)", alloc.P999)},
			}},
			{Heading: "Space Efficiency:", Lines: []CardLine{
				{Text: fmt.Sprintf("• Average: %.1f%%", eff)},
				{Text: fmt.Sprintf("• Waste:    %.1f%% (internal fragmentation)", 100-eff)},
			}},
			{Heading: "Key Properties:", Lines: []CardLine{
				{Text: "✓ O(1) deterministic class selection"},
				{Text: "✓ Lock-free allocation fast path"},
				{Text: "✓ Bounded RSS (no compaction needed)"},
				{Text: "✓ Safe handle validation (no crashes)"},
			}},
			{Heading: "Target Workloads:", Lines: []CardLine{
				{Text: "• High-frequency trading (HFT)"},
				{Text: "• Session stores"},
				{Text: "• Cache metadata"},
				{Text: "• Connection tracking"},
				{Text: "• Any fixed-size, high-churn allocation pattern"},
			}},
		},
	}
}

// SummaryCard renders card onto a wheat-tinted page with no axes. It
// writes summary.png.
func SummaryCard(cfg *Config, card Card) (*Artifact, error) {
	p := plot.New()
	p.HideAxes()

	backdrop, err := plotter.NewPolygon(plotter.XYs{
		{X: 0.02, Y: 0.01}, {X: 0.98, Y: 0.01}, {X: 0.98, Y: 0.99}, {X: 0.02, Y: 0.99},
	})
	if err != nil {
		return nil, err
	}
	backdrop.Color = cardFill
	backdrop.LineStyle.Color = cardEdge
	backdrop.LineStyle.Width = vg.Points(1.5)
	p.Add(backdrop)

	var (
		xys    plotter.XYs
		texts  []string
		styles []cardStyle
	)
	add := func(x, y float64, s string, st cardStyle) {
		xys = append(xys, plotter.XY{X: x, Y: y})
		texts = append(texts, s)
		styles = append(styles, st)
	}

	// The vertical step scales with the card's content so short and
	// long cards both fill the page.
	step := 0.94 / cardWeight(card)
	if step > 0.045 {
		step = 0.045
	}
	y := 0.97

	add(0.5, y, card.Title, cardStyle{size: 16, bold: true, center: true})
	y -= 1.2 * step
	add(0.5, y, strings.Repeat("=", len(card.Title)), cardStyle{size: 13, center: true})
	y -= 1.7 * step

	for _, line := range card.Thesis {
		add(0.5, y, line, cardStyle{size: 10.5, italic: true, sans: true, center: true, color: thesisSlate})
		y -= 1.1 * step
	}
	if len(card.Thesis) > 0 {
		y -= 0.7 * step
	}

	for _, sec := range card.Sections {
		y -= 0.5 * step
		add(0.07, y, sec.Heading, cardStyle{size: 12, bold: true})
		y -= 1.1 * step
		for _, line := range sec.Lines {
			st := cardStyle{size: 10.5}
			if line.Highlight {
				st.bold = true
				st.color = highlightGreen
			}
			add(0.1, y, line.Text, st)
			y -= step
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i, st := range styles {
		ts := &labels.TextStyle[i]
		ts.Font.Typeface = "Liberation"
		ts.Font.Variant = "Mono"
		if st.sans {
			ts.Font.Variant = "Sans"
		}
		ts.Font.Size = st.size
		if st.bold {
			ts.Font.Weight = xfont.WeightBold
		}
		if st.italic {
			ts.Font.Style = xfont.StyleItalic
		}
		if st.color != nil {
			ts.Color = st.color
		}
		ts.YAlign = draw.YTop
		if st.center {
			ts.XAlign = draw.XCenter
		}
	}
	p.Add(labels)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	return cfg.writeArtifact("summary.png", 10, 8, [][]*plot.Plot{{p}})
}

// cardWeight totals the layout weight of card's content. The title
// block weighs 2.9 steps, a thesis line 1.1, a section heading 1.6
// with its gap, a body line 1.
func cardWeight(c Card) float64 {
	w := 2.9
	if len(c.Thesis) > 0 {
		w += 1.1*float64(len(c.Thesis)) + 0.7
	}
	for _, s := range c.Sections {
		w += 1.6 + float64(len(s.Lines))
	}
	return w
}
