// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("out")
	if cfg.OutDir != "out" {
		t.Errorf("OutDir = %q, want out", cfg.OutDir)
	}
	if cfg.DPI != 150 {
		t.Errorf("DPI = %d, want 150", cfg.DPI)
	}
	if cfg.ThresholdNs != 100 {
		t.Errorf("ThresholdNs = %v, want 100", cfg.ThresholdNs)
	}
	if cfg.EfficiencyRefPct != 0 {
		t.Errorf("EfficiencyRefPct = %v, want 0 (derive)", cfg.EfficiencyRefPct)
	}
	if cfg.MissingFree != ZeroFill {
		t.Errorf("MissingFree = %v, want zero", cfg.MissingFree)
	}
}

func TestParseMissingPolicy(t *testing.T) {
	tests := []struct {
		in   string
		want MissingPolicy
	}{
		{"zero", ZeroFill},
		{"skip", Skip},
	}
	for _, test := range tests {
		got, err := ParseMissingPolicy(test.in)
		if err != nil {
			t.Fatalf("ParseMissingPolicy(%q): %v", test.in, err)
		}
		if got != test.want {
			t.Errorf("ParseMissingPolicy(%q) = %v, want %v", test.in, got, test.want)
		}
		if got.String() != test.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), test.in)
		}
	}

	if _, err := ParseMissingPolicy("drop"); err == nil {
		t.Error("ParseMissingPolicy(drop) succeeded, want error")
	} else if !strings.Contains(err.Error(), `"drop"`) {
		t.Errorf("error %q does not name the bad spelling", err)
	}
}

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "charts.yaml")
	if err := os.WriteFile(path, []byte(body), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	cfg := DefaultConfig("out")
	path := writeConfigFile(t, `
dpi: 72
threshold_ns: 250
efficiency_ref_pct: 88.9
missing_free: skip
`)
	if err := cfg.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if cfg.DPI != 72 {
		t.Errorf("DPI = %d, want 72", cfg.DPI)
	}
	if cfg.ThresholdNs != 250 {
		t.Errorf("ThresholdNs = %v, want 250", cfg.ThresholdNs)
	}
	if cfg.EfficiencyRefPct != 88.9 {
		t.Errorf("EfficiencyRefPct = %v, want 88.9", cfg.EfficiencyRefPct)
	}
	if cfg.MissingFree != Skip {
		t.Errorf("MissingFree = %v, want skip", cfg.MissingFree)
	}
}

func TestLoadFilePartial(t *testing.T) {
	cfg := DefaultConfig("out")
	path := writeConfigFile(t, "dpi: 300\n")
	if err := cfg.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if cfg.DPI != 300 {
		t.Errorf("DPI = %d, want 300", cfg.DPI)
	}
	// Absent keys keep their defaults.
	if cfg.ThresholdNs != 100 {
		t.Errorf("ThresholdNs = %v, want 100", cfg.ThresholdNs)
	}
	if cfg.MissingFree != ZeroFill {
		t.Errorf("MissingFree = %v, want zero", cfg.MissingFree)
	}
}

func TestLoadFileBadPolicy(t *testing.T) {
	cfg := DefaultConfig("out")
	path := writeConfigFile(t, "missing_free: sometimes\n")
	err := cfg.LoadFile(path)
	if err == nil {
		t.Fatal("LoadFile succeeded, want error")
	}
	if !strings.Contains(err.Error(), `"sometimes"`) {
		t.Errorf("error %q does not name the bad spelling", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := DefaultConfig("out")
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadFile succeeded on a missing file, want error")
	}
}
