// Copyright 2026 The temporal-slab Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats measurement values in the units the
// benchmark harness reports: nanoseconds, mebibytes, and percentages.
//
// Duration formatting follows the three-significant-figure convention
// of benchstat-style tooling, so axis ticks and annotations stay
// compact at any magnitude.
package benchunit

import "fmt"

// Nanoseconds formats a duration given in nanoseconds, picking the
// unit that keeps roughly three significant figures: "374ns",
// "1.14µs", "13.6ms", "1.05s".
func Nanoseconds(ns float64) string {
	switch x := ns / 1e9; {
	case x >= 99.5:
		return fmt.Sprintf("%.0fs", x)
	case x >= 9.95:
		return fmt.Sprintf("%.1fs", x)
	case x >= 0.995:
		return fmt.Sprintf("%.2fs", x)
	case x >= 0.0995:
		return fmt.Sprintf("%.0fms", x*1e3)
	case x >= 0.00995:
		return fmt.Sprintf("%.1fms", x*1e3)
	case x >= 0.000995:
		return fmt.Sprintf("%.2fms", x*1e3)
	case x >= 0.0000995:
		return fmt.Sprintf("%.0fµs", x*1e6)
	case x >= 0.00000995:
		return fmt.Sprintf("%.1fµs", x*1e6)
	case x >= 0.000000995:
		return fmt.Sprintf("%.2fµs", x*1e6)
	case x >= 0.0000000995:
		return fmt.Sprintf("%.0fns", x*1e9)
	case x >= 0.00000000995:
		return fmt.Sprintf("%.1fns", x*1e9)
	default:
		return fmt.Sprintf("%.2fns", x*1e9)
	}
}

// Mebibytes formats an RSS figure already measured in MiB.
func Mebibytes(mib float64) string {
	return fmt.Sprintf("%.2f MiB", mib)
}

// Percent formats a percentage with one decimal: "88.9%".
func Percent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// SignedPercent is Percent with an explicit sign: "+2.4%".
func SignedPercent(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// Count formats a whole-number quantity such as a slab count.
func Count(n float64) string {
	return fmt.Sprintf("%.0f", n)
}
