// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"fmt"
	"math"
)

// NarrativeBand is how far the delta may stray before a team is said to
// beat or trail the model
const NarrativeBand = 3.0

// Verdict buckets a delta against NarrativeBand
type Verdict string

const (
	VerdictExceeds Verdict = "exceeds model"
	VerdictInLine  Verdict = "in line with model"
	VerdictBelow   Verdict = "below model"
)

// VerdictFor classifies a points delta
func VerdictFor(delta float64) Verdict {
	switch {
	case delta >= NarrativeBand:
		return VerdictExceeds
	case delta <= -NarrativeBand:
		return VerdictBelow
	default:
		return VerdictInLine
	}
}

// Narrative summarises metrics in one sentence
func Narrative(m *Metrics) string {
	if m == nil {
		return "No valid matches this season, so there is no expectation to compare against."
	}

	switch VerdictFor(m.DeltaPoints) {
	case VerdictExceeds:
		return fmt.Sprintf("Exceeds model: %d points against %.2f expected, %.2f more than goals alone suggest.",
			m.Points, m.ExpectedPoints, m.DeltaPoints)
	case VerdictBelow:
		return fmt.Sprintf("Below model: %d points against %.2f expected, %.2f fewer than goals alone suggest.",
			m.Points, m.ExpectedPoints, math.Abs(m.DeltaPoints))
	default:
		return fmt.Sprintf("In line with model: %d points against %.2f expected.",
			m.Points, m.ExpectedPoints)
	}
}
