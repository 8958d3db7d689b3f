// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ZeroGoalsIsNeutral(t *testing.T) {
	m, log := Compute(Input{GoalsFor: 0, GoalsAgainst: 0, Played: 10, Points: 10}, DefaultExponent)
	require.NotNil(t, m)

	assert.Equal(t, 0.5, m.ExpectedWinRate)
	assert.Equal(t, 15.0, m.ExpectedPoints)
	assert.Equal(t, -5.0, m.DeltaPoints)
	assert.Equal(t, 1.5, m.ExpectedPointsPerMatch)
	assert.Equal(t, 1.0, m.ActualPointsPerMatch)
	assert.Equal(t, 0.3333, m.ActualWinRate)
	assert.GreaterOrEqual(t, len(log), 4)
	assert.Contains(t, strings.Join(log, "\n"), "0.5")
}

func TestCompute_NoMatches(t *testing.T) {
	for _, played := range []int{0, -3} {
		m, log := Compute(Input{GoalsFor: 5, GoalsAgainst: 3, Played: played}, DefaultExponent)
		assert.Nil(t, m)
		require.Len(t, log, 1)
		assert.Contains(t, log[0], "no valid matches")
	}
}

func TestCompute_KnownSeason(t *testing.T) {
	// 68 scored, 33 conceded over 38 games.
	m, _ := Compute(Input{GoalsFor: 68, GoalsAgainst: 33, Played: 38, Points: 75}, DefaultExponent)
	require.NotNil(t, m)

	gf := math.Pow(68, 2.7)
	ga := math.Pow(33, 2.7)
	wantRate := gf / (gf + ga)

	assert.InDelta(t, wantRate, m.ExpectedWinRate, 0.0001)
	assert.InDelta(t, wantRate*3*38, m.ExpectedPoints, 0.01)
	assert.InDelta(t, 75-wantRate*3*38, m.DeltaPoints, 0.01)
	assert.Equal(t, DefaultExponent, m.Exponent)
	assert.Equal(t, 38, m.Played)
	assert.Equal(t, 75, m.Points)
}

func TestCompute_NegativeGoalsDoNotPanic(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m, _ = Compute(Input{GoalsFor: -1, GoalsAgainst: 5, Played: 10, Points: 10}, DefaultExponent)
	})
	require.NotNil(t, m)
	assert.True(t, math.IsNaN(m.ExpectedWinRate))
	assert.Equal(t, 1.0, m.ActualPointsPerMatch)
}

func TestRoundPassesThroughNonFinite(t *testing.T) {
	assert.True(t, math.IsNaN(round(math.NaN(), 2)))
	assert.True(t, math.IsInf(round(math.Inf(1), 2), 1))
	assert.Equal(t, 1.23, round(1.2345, 2))
}

func TestCompute_NonPositiveExponentUsesDefault(t *testing.T) {
	in := Input{GoalsFor: 40, GoalsAgainst: 50, Played: 38, Points: 40}
	want, _ := Compute(in, DefaultExponent)
	got, _ := Compute(in, 0)
	assert.Equal(t, want, got)
}

func TestCompute_TraceOrder(t *testing.T) {
	_, log := Compute(Input{GoalsFor: 20, GoalsAgainst: 10, Played: 10, Points: 20}, DefaultExponent)

	steps := []string{
		"goals for term",
		"expected win rate",
		"expected points =",
		"expected points per match",
		"actual points per match",
		"delta points",
		"actual win rate",
		"rounded",
	}
	require.Len(t, log, len(steps))
	for i, step := range steps {
		assert.Contains(t, log[i], step, "line %d", i)
	}
	assert.Contains(t, log[0], "20^2.7")
	assert.Contains(t, log[0], "10^2.7")
}

func TestCompute_Deterministic(t *testing.T) {
	in := Input{GoalsFor: 55, GoalsAgainst: 47, Played: 38, Points: 52}
	m1, l1 := Compute(in, DefaultExponent)
	m2, l2 := Compute(in, DefaultExponent)
	assert.Equal(t, m1, m2)
	assert.Equal(t, l1, l2)
}

func TestCompute_PointsRoundTrip(t *testing.T) {
	inputs := []Input{
		{GoalsFor: 1, GoalsAgainst: 0, Played: 1, Points: 3},
		{GoalsFor: 68, GoalsAgainst: 33, Played: 38, Points: 75},
		{GoalsFor: 20, GoalsAgainst: 85, Played: 38, Points: 11},
		{GoalsFor: 99, GoalsAgainst: 26, Played: 38, Points: 100},
		{GoalsFor: 7, GoalsAgainst: 7, Played: 7, Points: 7},
	}

	for _, in := range inputs {
		m, _ := Compute(in, DefaultExponent)
		require.NotNil(t, m)
		// per-match is rounded to 3 dp, so the error is at most 0.0005 per match
		tolerance := 0.0005*float64(in.Played) + 1e-9
		assert.InDelta(t, float64(in.Points), m.ActualPointsPerMatch*float64(in.Played), tolerance)
		assert.GreaterOrEqual(t, m.ExpectedWinRate, 0.0)
		assert.LessOrEqual(t, m.ExpectedWinRate, 1.0)
	}
}

func TestNarrative(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
		want  Verdict
	}{
		{"well above", 8.2, VerdictExceeds},
		{"on the band", 3, VerdictExceeds},
		{"close", 2.99, VerdictInLine},
		{"close below", -2.5, VerdictInLine},
		{"on the lower band", -3, VerdictBelow},
		{"far below", -11, VerdictBelow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictFor(tt.delta))
			text := Narrative(&Metrics{Points: 50, ExpectedPoints: 50 - tt.delta, DeltaPoints: tt.delta})
			assert.True(t, strings.HasPrefix(strings.ToLower(text), string(tt.want)), text)
		})
	}

	assert.Contains(t, Narrative(nil), "No valid matches")
}
