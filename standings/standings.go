// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package standings

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Policy selects the primary ordering of a league table
type Policy string

const (
	PolicyPoints       Policy = "points"
	PolicyGoalsFor     Policy = "goals_for"
	PolicyGoalsAgainst Policy = "goals_against"
	PolicyGoalDiff     Policy = "goal_diff"
)

// DefaultPolicy is used when the caller does not name one
const DefaultPolicy = PolicyPoints

// ErrInvalidPolicy matches every *InvalidPolicyError via errors.Is
var ErrInvalidPolicy = errors.New("invalid sort policy")

// InvalidPolicyError names the policy token that could not be recognised
type InvalidPolicyError struct {
	Value string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid sort policy %q (want one of %s)", e.Value, strings.Join(policyNames(), ", "))
}

func (e *InvalidPolicyError) Is(target error) bool {
	return target == ErrInvalidPolicy
}

// Record is one team's aggregate line for a single season
type Record struct {
	TeamID         int64
	TeamName       string
	Played         int
	Won            int
	Drawn          int
	Lost           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// RankedRow is a Record with its 1-indexed position under some policy
type RankedRow struct {
	Record
	Position int
}

// sortKey is one link of a tie-break chain
type sortKey struct {
	value     func(r *Record) int
	ascending bool
}

var (
	byPoints       = func(r *Record) int { return r.Points }
	byGoalsFor     = func(r *Record) int { return r.GoalsFor }
	byGoalsAgainst = func(r *Record) int { return r.GoalsAgainst }
	byGoalDiff     = func(r *Record) int { return r.GoalDifference }
)

// chains holds the declared comparison keys for every policy. The team name
// (and then team ID) are appended by compare, never listed here.
var chains = map[Policy][]sortKey{
	PolicyPoints: {
		{value: byPoints},
		{value: byGoalDiff},
		{value: byGoalsFor},
	},
	PolicyGoalsFor: {
		{value: byGoalsFor},
		{value: byPoints},
	},
	PolicyGoalsAgainst: {
		{value: byGoalsAgainst, ascending: true},
		{value: byPoints},
	},
	PolicyGoalDiff: {
		{value: byGoalDiff},
		{value: byPoints},
	},
}

func policyNames() []string {
	return []string{
		string(PolicyPoints),
		string(PolicyGoalsFor),
		string(PolicyGoalsAgainst),
		string(PolicyGoalDiff),
	}
}

// Policies lists every supported policy in display order
func Policies() []Policy {
	return []Policy{PolicyPoints, PolicyGoalsFor, PolicyGoalsAgainst, PolicyGoalDiff}
}

// ParsePolicy maps a request token onto a Policy. An empty token means the
// default policy; anything else unknown is an error.
func ParsePolicy(s string) (Policy, error) {
	if s == "" {
		return DefaultPolicy, nil
	}
	p := Policy(s)
	if _, ok := chains[p]; !ok {
		return "", &InvalidPolicyError{Value: s}
	}
	return p, nil
}

// Valid reports whether p is one of the supported policies
func (p Policy) Valid() bool {
	_, ok := chains[p]
	return ok
}

// Rank orders one season's records under the given policy and assigns
// positions 1..n. The input slice is left untouched.
func Rank(records []Record, policy Policy) ([]RankedRow, error) {
	keys, ok := chains[policy]
	if !ok {
		return nil, &InvalidPolicyError{Value: string(policy)}
	}

	rows := make([]RankedRow, len(records))
	for i, rec := range records {
		rec.GoalDifference = rec.GoalsFor - rec.GoalsAgainst
		rows[i] = RankedRow{Record: rec}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return compare(keys, &rows[i].Record, &rows[j].Record) < 0
	})

	for i := range rows {
		rows[i].Position = i + 1
	}

	return rows, nil
}

// compare walks the chain and falls back to name, then team ID, ascending
func compare(keys []sortKey, a, b *Record) int {
	for _, k := range keys {
		av, bv := k.value(a), k.value(b)
		if av == bv {
			continue
		}
		if k.ascending == (av < bv) {
			return -1
		}
		return 1
	}

	if c := strings.Compare(a.TeamName, b.TeamName); c != 0 {
		return c
	}

	switch {
	case a.TeamID < b.TeamID:
		return -1
	case a.TeamID > b.TeamID:
		return 1
	}
	return 0
}

// Top returns the first n rows. n <= 0 returns every row.
func Top(rows []RankedRow, n int) []RankedRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Find looks up a team's row in an already ranked table
func Find(rows []RankedRow, teamID int64) (RankedRow, bool) {
	for _, r := range rows {
		if r.TeamID == teamID {
			return r, true
		}
	}
	return RankedRow{}, false
}
