// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders benchmark visualizations as PNG artifacts.
//
// Each renderer is a function from derived statistics to one chart
// file. Renderers share a Config that fixes the output directory and
// the visual parameters; they never consult ambient global state and
// never write to a stream directly. A renderer given an empty input
// reports a notice through the configured Warnf sink and returns a nil
// Artifact rather than an error, so one missing benchmark group does
// not block the rest of a run.
package benchchart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// A MissingPolicy selects what the latency chart does when no free
// operation summary was loaded.
type MissingPolicy int

const (
	// ZeroFill plots the free series as zero-height bars, keeping
	// the bar layout stable across runs.
	ZeroFill MissingPolicy = iota
	// Skip omits the free series entirely.
	Skip
)

// missingPolicies provides the spellings accepted by flags and config
// files.
var missingPolicies = map[string]MissingPolicy{
	"zero": ZeroFill,
	"skip": Skip,
}

// ParseMissingPolicy converts a flag or config file spelling.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	p, ok := missingPolicies[s]
	if !ok {
		return 0, fmt.Errorf("unknown missing-free policy %q (options are zero, skip)", s)
	}
	return p, nil
}

func (p MissingPolicy) String() string {
	for name, q := range missingPolicies {
		if q == p {
			return name
		}
	}
	return fmt.Sprintf("MissingPolicy(%d)", int(p))
}

// A Config carries the options shared by all renderers. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// OutDir receives the chart artifacts. It is created on the
	// first write.
	OutDir string

	// DPI sets the resolution of the written PNGs.
	DPI int

	// ThresholdNs positions the latency chart's reference line.
	ThresholdNs float64

	// EfficiencyRefPct pins the efficiency panel's reference line.
	// Zero derives the line from the plotted data instead.
	EfficiencyRefPct float64

	// MissingFree selects the free-series behavior when no free
	// latency summary was loaded.
	MissingFree MissingPolicy

	// Warnf, if non-nil, receives skip notices.
	Warnf func(format string, args ...interface{})
}

// DefaultConfig returns the options the command-line tools start
// from: 150 DPI, a 100ns latency threshold, a derived efficiency
// reference and a zero-filled free series.
func DefaultConfig(outDir string) *Config {
	return &Config{
		OutDir:      outDir,
		DPI:         150,
		ThresholdNs: 100,
		MissingFree: ZeroFill,
	}
}

func (c *Config) warnf(format string, args ...interface{}) {
	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}

// fileConfig is the YAML shape of a chart config file. Pointer fields
// distinguish an absent key from an explicit zero.
type fileConfig struct {
	DPI              *int     `yaml:"dpi"`
	ThresholdNs      *float64 `yaml:"threshold_ns"`
	EfficiencyRefPct *float64 `yaml:"efficiency_ref_pct"`
	MissingFree      *string  `yaml:"missing_free"`
}

// LoadFile overlays options from a YAML config file onto c. Keys
// absent from the file keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading chart config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("loading chart config %s: %w", path, err)
	}
	if fc.DPI != nil {
		c.DPI = *fc.DPI
	}
	if fc.ThresholdNs != nil {
		c.ThresholdNs = *fc.ThresholdNs
	}
	if fc.EfficiencyRefPct != nil {
		c.EfficiencyRefPct = *fc.EfficiencyRefPct
	}
	if fc.MissingFree != nil {
		p, err := ParseMissingPolicy(*fc.MissingFree)
		if err != nil {
			return fmt.Errorf("loading chart config %s: %w", path, err)
		}
		c.MissingFree = p
	}
	return nil
}
