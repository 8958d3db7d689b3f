// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analytics

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// DefaultExponent is the goals exponent used when the caller passes none
const DefaultExponent = 2.7

// Presentation precision, in decimal places
const (
	ratePlaces     = 4
	pointsPlaces   = 2
	perMatchPlaces = 3
)

// ErrNoValidMatches is returned by callers that need an error value for the
// played <= 0 outcome. Compute itself signals it with nil metrics.
var ErrNoValidMatches = errors.New("no valid matches")

// Input is one team-season aggregate
type Input struct {
	GoalsFor     int
	GoalsAgainst int
	Played       int
	Points       int
}

// Metrics is the derived expectation for one team-season. Every float is
// already rounded for presentation.
type Metrics struct {
	Exponent float64

	Played       int
	GoalsFor     int
	GoalsAgainst int
	Points       int

	ExpectedWinRate        float64
	ActualWinRate          float64
	ExpectedPoints         float64
	DeltaPoints            float64
	ExpectedPointsPerMatch float64
	ActualPointsPerMatch   float64
}

// trace collects one line per arithmetic step
type trace []string

func (t *trace) add(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

// Compute derives expected points from goals scored and conceded. When the
// team has no matches it returns nil metrics and a single explanatory line.
func Compute(in Input, exponent float64) (*Metrics, []string) {
	var log trace

	if in.Played <= 0 {
		log.add("played = %d: no valid matches, nothing to compute", in.Played)
		return nil, log
	}

	if exponent <= 0 {
		exponent = DefaultExponent
	}

	gfTerm := math.Pow(float64(in.GoalsFor), exponent)
	gaTerm := math.Pow(float64(in.GoalsAgainst), exponent)
	log.add("goals for term = %d^%g = %.4f; goals against term = %d^%g = %.4f",
		in.GoalsFor, exponent, gfTerm, in.GoalsAgainst, exponent, gaTerm)

	var expWinRate float64
	denom := gfTerm + gaTerm
	if denom == 0 {
		expWinRate = 0.5
		log.add("both goal terms are 0, expected win rate set to neutral 0.5")
	} else {
		expWinRate = gfTerm / denom
		log.add("expected win rate = %.4f / (%.4f + %.4f) = %.4f", gfTerm, gfTerm, gaTerm, expWinRate)
	}

	expPoints := expWinRate * 3 * float64(in.Played)
	log.add("expected points = %.4f * 3 * %d = %.4f", expWinRate, in.Played, expPoints)

	expPPM := expPoints / float64(in.Played)
	log.add("expected points per match = %.4f / %d = %.4f", expPoints, in.Played, expPPM)

	actualPPM := float64(in.Points) / float64(in.Played)
	log.add("actual points per match = %d / %d = %.4f", in.Points, in.Played, actualPPM)

	delta := float64(in.Points) - expPoints
	log.add("delta points = %d - %.4f = %.4f", in.Points, expPoints, delta)

	actualWinRate := float64(in.Points) / float64(3*in.Played)
	log.add("actual win rate = %d / (3 * %d) = %.4f", in.Points, in.Played, actualWinRate)

	m := &Metrics{
		Exponent:               exponent,
		Played:                 in.Played,
		GoalsFor:               in.GoalsFor,
		GoalsAgainst:           in.GoalsAgainst,
		Points:                 in.Points,
		ExpectedWinRate:        round(expWinRate, ratePlaces),
		ActualWinRate:          round(actualWinRate, ratePlaces),
		ExpectedPoints:         round(expPoints, pointsPlaces),
		DeltaPoints:            round(delta, pointsPlaces),
		ExpectedPointsPerMatch: round(expPPM, perMatchPlaces),
		ActualPointsPerMatch:   round(actualPPM, perMatchPlaces),
	}
	log.add("rounded: rates to %d dp, points to %d dp, per-match to %d dp", ratePlaces, pointsPlaces, perMatchPlaces)

	return m, log
}

// round leaves NaN and Inf alone; decimal cannot represent them
func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}
