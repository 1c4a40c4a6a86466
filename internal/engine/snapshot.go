package engine

import (
	"github.com/verte-zerg/passlab/internal/classify"
	"github.com/verte-zerg/passlab/internal/counter"
)

// Heuristics holds the aggregates filled in enhanced mode.
type Heuristics struct {
	Runs             *counter.Counter[string]
	Keyboard         *counter.Counter[string]
	Dates            *counter.Counter[string]
	NumericSequences int
	Leetspeak        int
	Capitalization   *counter.Counter[string]
	NumberSuffixes   *counter.Counter[string]
	SpecialPositions *counter.Counter[int]
	Words            *counter.Counter[string]
	WordBoundaries   *counter.Counter[string]
	WordsDetected    int
}

// Snapshot is the full set of aggregates of an accumulator. A snapshot
// returned by Accumulator.Snapshot is a private copy and may be read freely.
type Snapshot struct {
	MaxLength      int
	Enhanced       bool
	DictionarySize int

	Total    int
	Valid    int
	Filtered int

	Lengths    *counter.Counter[int]
	Patterns   *counter.Counter[string]
	Complexity *counter.Counter[int]
	Entropies  *counter.Counter[int]

	Chars      *counter.Counter[rune]
	Categories *counter.Counter[classify.Category]
	TotalChars int
	Followers  *counter.Table[rune, rune]
	Trigrams   *counter.Counter[string]

	// Indexed by position, len == MaxLength.
	PositionChars      []*counter.Counter[rune]
	PositionCategories []*counter.Counter[classify.Category]
	PositionFollowers  []*counter.Table[rune, rune]

	Heuristics Heuristics
}

func newSnapshot(maxLength int, enhanced bool) *Snapshot {
	s := &Snapshot{
		MaxLength:          maxLength,
		Enhanced:           enhanced,
		Lengths:            counter.New[int](),
		Patterns:           counter.New[string](),
		Complexity:         counter.New[int](),
		Entropies:          counter.New[int](),
		Chars:              counter.New[rune](),
		Categories:         counter.New[classify.Category](),
		Followers:          counter.NewTable[rune, rune](),
		Trigrams:           counter.New[string](),
		PositionChars:      make([]*counter.Counter[rune], maxLength),
		PositionCategories: make([]*counter.Counter[classify.Category], maxLength),
		PositionFollowers:  make([]*counter.Table[rune, rune], maxLength),
		Heuristics: Heuristics{
			Runs:             counter.New[string](),
			Keyboard:         counter.New[string](),
			Dates:            counter.New[string](),
			Capitalization:   counter.New[string](),
			NumberSuffixes:   counter.New[string](),
			SpecialPositions: counter.New[int](),
			Words:            counter.New[string](),
			WordBoundaries:   counter.New[string](),
		},
	}
	for i := 0; i < maxLength; i++ {
		s.PositionChars[i] = counter.New[rune]()
		s.PositionCategories[i] = counter.New[classify.Category]()
		s.PositionFollowers[i] = counter.NewTable[rune, rune]()
	}
	return s
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	out := newSnapshot(s.MaxLength, s.Enhanced)
	out.DictionarySize = s.DictionarySize
	out.Merge(s)
	return out
}

// Merge adds every aggregate of other into s. Counts are summed key-wise, so
// merge order does not change the result. Positions beyond s.MaxLength are
// dropped.
func (s *Snapshot) Merge(other *Snapshot) {
	if other == nil {
		return
	}
	s.Enhanced = s.Enhanced || other.Enhanced
	s.DictionarySize = max(s.DictionarySize, other.DictionarySize)
	s.Total += other.Total
	s.Valid += other.Valid
	s.Filtered += other.Filtered
	s.Lengths.Merge(other.Lengths)
	s.Patterns.Merge(other.Patterns)
	s.Complexity.Merge(other.Complexity)
	s.Entropies.Merge(other.Entropies)
	s.Chars.Merge(other.Chars)
	s.Categories.Merge(other.Categories)
	s.TotalChars += other.TotalChars
	s.Followers.Merge(other.Followers)
	s.Trigrams.Merge(other.Trigrams)
	for i := 0; i < min(s.MaxLength, other.MaxLength); i++ {
		s.PositionChars[i].Merge(other.PositionChars[i])
		s.PositionCategories[i].Merge(other.PositionCategories[i])
		s.PositionFollowers[i].Merge(other.PositionFollowers[i])
	}

	h, o := &s.Heuristics, &other.Heuristics
	h.Runs.Merge(o.Runs)
	h.Keyboard.Merge(o.Keyboard)
	h.Dates.Merge(o.Dates)
	h.NumericSequences += o.NumericSequences
	h.Leetspeak += o.Leetspeak
	h.Capitalization.Merge(o.Capitalization)
	h.NumberSuffixes.Merge(o.NumberSuffixes)
	h.SpecialPositions.Merge(o.SpecialPositions)
	h.Words.Merge(o.Words)
	h.WordBoundaries.Merge(o.WordBoundaries)
	h.WordsDetected += o.WordsDetected
}

// MergeSnapshots combines snapshots into a new one sized to the largest
// MaxLength.
func MergeSnapshots(snaps ...*Snapshot) *Snapshot {
	maxLength := 0
	for _, s := range snaps {
		if s != nil && s.MaxLength > maxLength {
			maxLength = s.MaxLength
		}
	}
	out := newSnapshot(maxLength, false)
	for _, s := range snaps {
		out.Merge(s)
	}
	return out
}

// Percent returns part/whole*100, or 0 when whole is not positive.
func Percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// MeanLength returns the average accepted length, or 0.
func (s *Snapshot) MeanLength() float64 {
	return weightedMean(s.Lengths)
}

// LengthRange returns the shortest and longest accepted lengths, or zeros.
func (s *Snapshot) LengthRange() (lo, hi int) {
	lo, _ = s.Lengths.Min()
	hi, _ = s.Lengths.Max()
	return lo, hi
}

// MeanEntropy returns the average entropy estimate, or 0.
func (s *Snapshot) MeanEntropy() float64 {
	return weightedMean(s.Entropies)
}

// EntropyRange returns the lowest and highest entropy estimates, or zeros.
func (s *Snapshot) EntropyRange() (lo, hi int) {
	lo, _ = s.Entropies.Min()
	hi, _ = s.Entropies.Max()
	return lo, hi
}

// PositionsUsed returns the number of leading positions with any character.
func (s *Snapshot) PositionsUsed() int {
	n := 0
	for i, c := range s.PositionChars {
		if c.Total() > 0 {
			n = i + 1
		}
	}
	return n
}

// DatePasswords returns how many distinct passwords contained a date.
func (s *Snapshot) DatePasswords() int {
	return s.Heuristics.Dates.Len()
}

func weightedMean(c *counter.Counter[int]) float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	sum := 0
	for _, k := range c.Keys() {
		sum += k * c.Get(k)
	}
	return float64(sum) / float64(total)
}
