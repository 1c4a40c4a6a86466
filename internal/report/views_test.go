package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/model"
)

func corpusSnapshot(t *testing.T, enhanced bool, passwords ...string) *engine.Snapshot {
	t.Helper()
	opts := model.DefaultOptions()
	opts.Enhanced = enhanced
	acc := engine.New(opts)
	for _, pw := range passwords {
		acc.Add(pw)
	}
	return acc.Snapshot()
}

func scenarioReport(t *testing.T) (*engine.Snapshot, Report) {
	t.Helper()
	snap := corpusSnapshot(t, true, "Password1", "password1", "123456", "qwerty")
	meta := Meta{
		Input:       "corpus.txt",
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Elapsed:     1500 * time.Millisecond,
		Options:     model.Options{MinLength: 1, MaxLength: 32, Enhanced: true},
	}
	return snap, Build(snap, meta, DefaultLimits())
}

func TestBuildSummary(t *testing.T) {
	_, r := scenarioReport(t)
	s := r.Summary

	if s.Total != 4 || s.Valid != 4 || s.Filtered != 0 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	wantLengths := []Row{{Key: "6", Count: 2, Percent: 50}, {Key: "9", Count: 2, Percent: 50}}
	if !reflect.DeepEqual(s.Lengths, wantLengths) {
		t.Fatalf("unexpected lengths: %+v", s.Lengths)
	}
	if !reflect.DeepEqual(s.LengthDist, wantLengths) {
		t.Fatalf("unexpected length distribution: %+v", s.LengthDist)
	}
	var patterns []string
	for _, p := range s.Patterns {
		patterns = append(patterns, p.Key)
		if p.Percent != 25 {
			t.Fatalf("expected 25%% for %s, got %v", p.Key, p.Percent)
		}
	}
	wantPatterns := []string{"Lllllllld", "dddddd", "llllll", "llllllld"}
	if !reflect.DeepEqual(patterns, wantPatterns) {
		t.Fatalf("expected patterns %v, got %v", wantPatterns, patterns)
	}
	if s.MeanEntropy != 33 || s.MinEntropy != 18 || s.MaxEntropy != 45 {
		t.Fatalf("unexpected entropy: mean=%v min=%d max=%d", s.MeanEntropy, s.MinEntropy, s.MaxEntropy)
	}
	if len(s.Complexity) != 3 {
		t.Fatalf("expected 3 complexity levels, got %+v", s.Complexity)
	}
	if c := s.Complexity[0]; c.Level != 1 || c.Count != 2 || c.Percent != 50 {
		t.Fatalf("unexpected level 1 row: %+v", c)
	}
	if s.Complexity[2].Description != complexityDescriptions[3] {
		t.Fatalf("unexpected description: %q", s.Complexity[2].Description)
	}
}

func TestBuildCharacters(t *testing.T) {
	_, r := scenarioReport(t)
	c := r.Characters
	if c.TotalChars != 30 {
		t.Fatalf("expected 30 characters, got %d", c.TotalChars)
	}
	if c.Top[0].Key != "s" || c.Top[0].Count != 4 {
		t.Fatalf("expected s to lead, got %+v", c.Top[0])
	}
	want := []int{21, 1, 8, 0}
	for i, row := range c.Categories {
		if row.Count != want[i] {
			t.Fatalf("category %s: expected %d, got %d", row.Key, want[i], row.Count)
		}
	}
	if c.Categories[0].Percent != 70 {
		t.Fatalf("expected 70%% lowercase, got %v", c.Categories[0].Percent)
	}
}

func TestBuildPositions(t *testing.T) {
	_, r := scenarioReport(t)
	if len(r.Positions) != 9 {
		t.Fatalf("expected 9 positions, got %d", len(r.Positions))
	}
	first := r.Positions[0]
	if first.Lower != 50 || first.Upper != 25 || first.Digit != 25 || first.Special != 0 {
		t.Fatalf("unexpected first position shares: %+v", first)
	}
	if first.Dominant != "lowercase" {
		t.Fatalf("expected lowercase to dominate, got %s", first.Dominant)
	}
	if got := keysOf(first.Top); !reflect.DeepEqual(got, []string{"1", "P", "p", "q"}) {
		t.Fatalf("unexpected top characters: %v", got)
	}
	last := r.Positions[8]
	if last.Position != 9 || last.Dominant != "digit" || last.Digit != 100 {
		t.Fatalf("unexpected last position: %+v", last)
	}
}

func TestBuildPositionsHonorsLimit(t *testing.T) {
	snap := corpusSnapshot(t, false, "abcdefghijklmnop")
	lim := DefaultLimits()
	if got := len(BuildPositions(snap, lim)); got != 10 {
		t.Fatalf("expected 10 positions, got %d", got)
	}
	lim.Positions = 3
	if got := len(BuildPositions(snap, lim)); got != 3 {
		t.Fatalf("expected 3 positions, got %d", got)
	}
}

func TestBuildFollowers(t *testing.T) {
	_, r := scenarioReport(t)
	f := r.Followers
	want := FollowerRow{Char: "s", Follower: "s", Count: 2, Percent: 50}
	if f.Global[0] != want {
		t.Fatalf("expected %+v, got %+v", want, f.Global[0])
	}
	if len(f.Positions) != 5 {
		t.Fatalf("expected followers for 5 positions, got %d", len(f.Positions))
	}
	for i, rows := range f.Positions {
		for j := 1; j < len(rows); j++ {
			if rows[j].Percent > rows[j-1].Percent {
				t.Fatalf("position %d followers not sorted: %+v", i+1, rows)
			}
		}
	}
	if len(f.Trigrams) == 0 || len(f.Trigrams) > 10 {
		t.Fatalf("unexpected trigram count %d", len(f.Trigrams))
	}
}

func TestBuildEnhanced(t *testing.T) {
	_, r := scenarioReport(t)
	e := r.Enhanced
	if e == nil {
		t.Fatalf("expected enhanced view")
	}
	if len(e.Keyboard) != 1 || e.Keyboard[0].Key != "qwerty" || e.Keyboard[0].Percent != 25 {
		t.Fatalf("unexpected keyboard rows: %+v", e.Keyboard)
	}
	if e.NumericSequences != 1 || e.NumericPercent != 25 {
		t.Fatalf("unexpected numeric sequences: %d %v", e.NumericSequences, e.NumericPercent)
	}
}

func TestBuildOmitsEnhancedWhenDisabled(t *testing.T) {
	snap := corpusSnapshot(t, false, "qwerty")
	if r := Build(snap, Meta{}, DefaultLimits()); r.Enhanced != nil {
		t.Fatalf("expected no enhanced view, got %+v", r.Enhanced)
	}
}

func TestBuildClassic(t *testing.T) {
	_, r := scenarioReport(t)
	row := r.Classic[0]
	if !reflect.DeepEqual(row.Percents, []float64{50, 25, 25, 0}) {
		t.Fatalf("unexpected percents: %v", row.Percents)
	}
	if !reflect.DeepEqual(row.Highest, []bool{true, false, false, false}) {
		t.Fatalf("unexpected highest flags: %v", row.Highest)
	}
	if !reflect.DeepEqual(row.MostCommon, []string{"1", "P", "p", "q"}) {
		t.Fatalf("unexpected most common: %v", row.MostCommon)
	}
	if len(row.LeastSpecial) != 0 {
		t.Fatalf("expected no specials, got %v", row.LeastSpecial)
	}
}

func TestBuildEmptySnapshot(t *testing.T) {
	snap := corpusSnapshot(t, true)
	r := Build(snap, Meta{}, DefaultLimits())
	if r.Summary.Valid != 0 || r.Summary.MeanLength != 0 || r.Summary.MeanEntropy != 0 {
		t.Fatalf("expected zero summary, got %+v", r.Summary)
	}
	if len(r.Positions) != 0 || len(r.Classic) != 0 {
		t.Fatalf("expected no positions, got %d/%d", len(r.Positions), len(r.Classic))
	}
	for _, row := range r.Characters.Categories {
		if row.Percent != 0 {
			t.Fatalf("expected zero share, got %+v", row)
		}
	}
}

func keysOf(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Key
	}
	return out
}
