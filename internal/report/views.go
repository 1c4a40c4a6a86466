// Package report turns snapshots into report views and renders them to the
// console, CSV, JSON and Markdown.
package report

import (
	"cmp"
	"slices"
	"strconv"
	"time"
	"unicode"

	"github.com/verte-zerg/passlab/internal/classify"
	"github.com/verte-zerg/passlab/internal/counter"
	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/model"
)

// Limits caps the length of the ranked tables in a report.
type Limits struct {
	Lengths           int
	Patterns          int
	Chars             int
	Positions         int
	PositionChars     int
	FollowerChars     int
	FollowerPositions int
	Followers         int
	Trigrams          int
	Heuristics        int
	Words             int
	Boundaries        int
}

// DefaultLimits returns the table sizes of the standard console report.
func DefaultLimits() Limits {
	return Limits{
		Lengths:           5,
		Patterns:          5,
		Chars:             20,
		Positions:         10,
		PositionChars:     5,
		FollowerChars:     15,
		FollowerPositions: 5,
		Followers:         5,
		Trigrams:          10,
		Heuristics:        10,
		Words:             15,
		Boundaries:        10,
	}
}

// Meta describes the run a report belongs to.
type Meta struct {
	Input       string
	GeneratedAt time.Time
	Elapsed     time.Duration
	Options     model.Options
}

// Row is one ranked entry with its share of the relevant total.
type Row struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ComplexityRow is one complexity level.
type ComplexityRow struct {
	Level       int     `json:"level"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
}

// Summary holds the headline figures of a run.
type Summary struct {
	Total       int             `json:"total"`
	Valid       int             `json:"valid"`
	Filtered    int             `json:"filtered"`
	MeanLength  float64         `json:"mean_length"`
	MinLength   int             `json:"min_length"`
	MaxLength   int             `json:"max_length"`
	Lengths     []Row           `json:"lengths"`
	LengthDist  []Row           `json:"length_distribution"`
	Patterns    []Row           `json:"patterns"`
	MeanEntropy float64         `json:"mean_entropy"`
	MinEntropy  int             `json:"min_entropy"`
	MaxEntropy  int             `json:"max_entropy"`
	Complexity  []ComplexityRow `json:"complexity"`
}

// Characters holds global character frequencies.
type Characters struct {
	TotalChars int   `json:"total_chars"`
	Top        []Row `json:"top"`
	Categories []Row `json:"categories"`
}

// PositionRow describes the characters seen at one position.
type PositionRow struct {
	Position int     `json:"position"`
	Total    int     `json:"total"`
	Lower    float64 `json:"lowercase_percent"`
	Upper    float64 `json:"uppercase_percent"`
	Digit    float64 `json:"digit_percent"`
	Special  float64 `json:"special_percent"`
	Dominant string  `json:"dominant"`
	Top      []Row   `json:"top"`
}

// FollowerRow is the most common follower of a character.
type FollowerRow struct {
	Char     string  `json:"char"`
	Follower string  `json:"follower"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// Followers holds the character sequence views.
type Followers struct {
	Global    []FollowerRow   `json:"global"`
	Positions [][]FollowerRow `json:"positions"`
	Trigrams  []Row           `json:"trigrams"`
}

// BoundaryRow is one character found next to a dictionary word.
type BoundaryRow struct {
	Side  string `json:"side"`
	Char  string `json:"char"`
	Count int    `json:"count"`
}

// Enhanced holds the heuristic views.
type Enhanced struct {
	Runs             []Row         `json:"repetitive_sequences"`
	Keyboard         []Row         `json:"keyboard_sequences"`
	DatePasswords    int           `json:"date_patterns_count"`
	DatePercent      float64       `json:"date_patterns_percent"`
	NumericSequences int           `json:"numeric_sequences_count"`
	NumericPercent   float64       `json:"numeric_sequences_percent"`
	Leetspeak        int           `json:"leetspeak_count"`
	LeetspeakPercent float64       `json:"leetspeak_percent"`
	Capitalization   []Row         `json:"capitalization_patterns"`
	NumberSuffixes   []Row         `json:"number_suffix_patterns"`
	SpecialPositions []Row         `json:"special_char_positions"`
	DictionarySize   int           `json:"dictionary_size"`
	WordsDetected    int           `json:"words_detected"`
	WordsPercent     float64       `json:"words_percent"`
	Words            []Row         `json:"common_words"`
	Boundaries       []BoundaryRow `json:"word_boundaries"`
}

// ClassicRow is one position of the classic type table. Only ASCII letters,
// digits and allow-listed special characters are counted.
type ClassicRow struct {
	Position     int       `json:"position"`
	Percents     []float64 `json:"percents"`
	Highest      []bool    `json:"-"`
	MostCommon   []string  `json:"most_common"`
	LeastCommon  []string  `json:"least_common"`
	LeastLetters []string  `json:"least_used_letters"`
	LeastNumbers []string  `json:"least_used_numbers"`
	LeastSpecial []string  `json:"least_used_specials"`
}

// Report bundles every view of a snapshot.
type Report struct {
	Meta       Meta          `json:"-"`
	Summary    Summary       `json:"summary"`
	Characters Characters    `json:"characters"`
	Positions  []PositionRow `json:"positions"`
	Followers  Followers     `json:"followers"`
	Enhanced   *Enhanced     `json:"enhanced,omitempty"`
	Classic    []ClassicRow  `json:"classic"`
}

// Build computes every view of snap.
func Build(snap *engine.Snapshot, meta Meta, lim Limits) Report {
	r := Report{
		Meta:       meta,
		Summary:    BuildSummary(snap, lim),
		Characters: BuildCharacters(snap, lim),
		Positions:  BuildPositions(snap, lim),
		Followers:  BuildFollowers(snap, lim),
		Classic:    BuildClassic(snap),
	}
	if snap.Enhanced {
		e := BuildEnhanced(snap, lim)
		r.Enhanced = &e
	}
	return r
}

var complexityDescriptions = []string{
	"No character type",
	"Single character type (e.g., only lowercase)",
	"Two character types (e.g., lowercase + digits)",
	"Three character types (e.g., lower + upper + digits)",
	"All character types (lower + upper + digits + special)",
}

// BuildSummary computes the summary view.
func BuildSummary(snap *engine.Snapshot, lim Limits) Summary {
	minLen, maxLen := snap.LengthRange()
	minEnt, maxEnt := snap.EntropyRange()
	s := Summary{
		Total:       snap.Total,
		Valid:       snap.Valid,
		Filtered:    snap.Filtered,
		MeanLength:  snap.MeanLength(),
		MinLength:   minLen,
		MaxLength:   maxLen,
		Lengths:     rows(snap.Lengths.Top(lim.Lengths), strconv.Itoa, snap.Valid),
		Patterns:    rows(snap.Patterns.Top(lim.Patterns), identity, snap.Valid),
		MeanEntropy: snap.MeanEntropy(),
		MinEntropy:  minEnt,
		MaxEntropy:  maxEnt,
	}
	for _, length := range snap.Lengths.Keys() {
		count := snap.Lengths.Get(length)
		s.LengthDist = append(s.LengthDist, Row{
			Key:     strconv.Itoa(length),
			Count:   count,
			Percent: engine.Percent(count, snap.Valid),
		})
	}
	for _, level := range snap.Complexity.Keys() {
		desc := "Unknown"
		if level >= 0 && level < len(complexityDescriptions) {
			desc = complexityDescriptions[level]
		}
		count := snap.Complexity.Get(level)
		s.Complexity = append(s.Complexity, ComplexityRow{
			Level:       level,
			Description: desc,
			Count:       count,
			Percent:     engine.Percent(count, snap.Valid),
		})
	}
	return s
}

// BuildCharacters computes the global character view. Category totals count
// ASCII letters and digits and allow-listed special characters.
func BuildCharacters(snap *engine.Snapshot, lim Limits) Characters {
	var lower, upper, digit, special int
	for _, r := range snap.Chars.Keys() {
		n := snap.Chars.Get(r)
		switch {
		case r >= 'a' && r <= 'z':
			lower += n
		case r >= 'A' && r <= 'Z':
			upper += n
		case r >= '0' && r <= '9':
			digit += n
		case classify.IsSpecial(r):
			special += n
		}
	}
	total := snap.TotalChars
	return Characters{
		TotalChars: total,
		Top:        rows(snap.Chars.Top(lim.Chars), charKey, total),
		Categories: []Row{
			{Key: "Lowercase", Count: lower, Percent: engine.Percent(lower, total)},
			{Key: "Uppercase", Count: upper, Percent: engine.Percent(upper, total)},
			{Key: "Digits", Count: digit, Percent: engine.Percent(digit, total)},
			{Key: "Special", Count: special, Percent: engine.Percent(special, total)},
		},
	}
}

// BuildPositions computes per-position category shares and top characters
// for the leading positions that saw any character.
func BuildPositions(snap *engine.Snapshot, lim Limits) []PositionRow {
	n := min(lim.Positions, snap.PositionsUsed())
	var out []PositionRow
	for p := 0; p < n; p++ {
		cats := snap.PositionCategories[p]
		total := cats.Total()
		if total == 0 {
			continue
		}
		row := PositionRow{
			Position: p + 1,
			Total:    total,
			Lower:    engine.Percent(cats.Get(classify.Lowercase), total),
			Upper:    engine.Percent(cats.Get(classify.Uppercase), total),
			Digit:    engine.Percent(cats.Get(classify.Digit), total),
			Special:  engine.Percent(cats.Get(classify.Special), total),
			Dominant: dominant(cats).String(),
			Top:      rows(snap.PositionChars[p].Top(lim.PositionChars), charKey, snap.PositionChars[p].Total()),
		}
		out = append(out, row)
	}
	return out
}

// dominant returns the most common category, earliest in report order on a
// tie.
func dominant(c *counter.Counter[classify.Category]) classify.Category {
	best := classify.Lowercase
	for _, cat := range classify.Categories {
		if c.Get(cat) > c.Get(best) {
			best = cat
		}
	}
	return best
}

// BuildFollowers computes the most common follower of the most frequent
// characters, per-position followers for the leading positions and the top
// trigrams.
func BuildFollowers(snap *engine.Snapshot, lim Limits) Followers {
	var f Followers
	for _, e := range snap.Chars.Top(lim.FollowerChars) {
		top := snap.Followers.Row(e.Key).Top(1)
		if len(top) == 0 {
			continue
		}
		f.Global = append(f.Global, FollowerRow{
			Char:     string(e.Key),
			Follower: string(top[0].Key),
			Count:    top[0].Count,
			Percent:  engine.Percent(top[0].Count, e.Count),
		})
	}

	n := min(lim.FollowerPositions, snap.PositionsUsed())
	for p := 0; p < n; p++ {
		table := snap.PositionFollowers[p]
		var rowsAt []FollowerRow
		for _, c := range table.Rows() {
			top := table.Row(c).Top(1)
			if len(top) == 0 {
				continue
			}
			rowsAt = append(rowsAt, FollowerRow{
				Char:     string(c),
				Follower: string(top[0].Key),
				Count:    top[0].Count,
				Percent:  engine.Percent(top[0].Count, snap.PositionChars[p].Get(c)),
			})
		}
		slices.SortStableFunc(rowsAt, func(a, b FollowerRow) int {
			return cmp.Compare(b.Percent, a.Percent)
		})
		if lim.Followers > 0 && len(rowsAt) > lim.Followers {
			rowsAt = rowsAt[:lim.Followers]
		}
		f.Positions = append(f.Positions, rowsAt)
	}

	f.Trigrams = rows(snap.Trigrams.Top(lim.Trigrams), identity, snap.Trigrams.Total())
	return f
}

// BuildEnhanced computes the heuristic views.
func BuildEnhanced(snap *engine.Snapshot, lim Limits) Enhanced {
	h := snap.Heuristics
	valid := snap.Valid
	e := Enhanced{
		Runs:             rows(h.Runs.Top(lim.Heuristics), identity, valid),
		Keyboard:         rows(h.Keyboard.Top(lim.Heuristics), identity, valid),
		DatePasswords:    snap.DatePasswords(),
		DatePercent:      engine.Percent(snap.DatePasswords(), valid),
		NumericSequences: h.NumericSequences,
		NumericPercent:   engine.Percent(h.NumericSequences, valid),
		Leetspeak:        h.Leetspeak,
		LeetspeakPercent: engine.Percent(h.Leetspeak, valid),
		Capitalization:   rows(h.Capitalization.Top(0), identity, h.Capitalization.Total()),
		NumberSuffixes:   rows(h.NumberSuffixes.Top(lim.Heuristics), identity, valid),
		DictionarySize:   snap.DictionarySize,
		WordsDetected:    h.WordsDetected,
		WordsPercent:     engine.Percent(h.WordsDetected, valid),
		Words:            rows(h.Words.Top(lim.Words), identity, valid),
	}
	for _, pos := range h.SpecialPositions.Keys() {
		count := h.SpecialPositions.Get(pos)
		e.SpecialPositions = append(e.SpecialPositions, Row{
			Key:     strconv.Itoa(pos + 1),
			Count:   count,
			Percent: engine.Percent(count, h.SpecialPositions.Total()),
		})
	}
	for _, b := range h.WordBoundaries.Top(lim.Boundaries) {
		side, char := splitBoundary(b.Key)
		e.Boundaries = append(e.Boundaries, BoundaryRow{Side: side, Char: char, Count: b.Count})
	}
	return e
}

func splitBoundary(key string) (side, char string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '_' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

// ClassicCategories names the columns of ClassicRow.Percents.
var ClassicCategories = []string{"Lower", "Upper", "Number", "Special"}

const classicTop = 5

// BuildClassic computes the classic per-position type table.
func BuildClassic(snap *engine.Snapshot) []ClassicRow {
	n := snap.PositionsUsed()
	out := make([]ClassicRow, 0, n)
	for p := 0; p < n; p++ {
		chars := counter.New[rune]()
		var counts [4]int
		for _, r := range snap.PositionChars[p].Keys() {
			c := snap.PositionChars[p].Get(r)
			switch {
			case r >= 'a' && r <= 'z':
				counts[0] += c
			case r >= 'A' && r <= 'Z':
				counts[1] += c
			case r >= '0' && r <= '9':
				counts[2] += c
			case classify.IsSpecial(r):
				counts[3] += c
			}
			if unicode.IsLetter(r) || unicode.IsDigit(r) || classify.IsSpecial(r) {
				chars.Add(r, c)
			}
		}
		total := counts[0] + counts[1] + counts[2] + counts[3]
		row := ClassicRow{Position: p + 1, Percents: make([]float64, 4), Highest: make([]bool, 4)}
		highest := 0.0
		for i, c := range counts {
			row.Percents[i] = engine.Percent(c, total)
			highest = max(highest, row.Percents[i])
		}
		for i, pct := range row.Percents {
			row.Highest[i] = pct == highest
		}
		row.MostCommon = keys(chars.Top(classicTop))
		row.LeastCommon = keys(chars.Bottom(classicTop, nil))
		row.LeastLetters = keys(chars.Bottom(classicTop, isASCIILetter))
		row.LeastNumbers = keys(chars.Bottom(classicTop, unicode.IsDigit))
		row.LeastSpecial = keys(chars.Bottom(classicTop, classify.IsSpecial))
		out = append(out, row)
	}
	return out
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func keys(entries []counter.Entry[rune]) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Key)
	}
	return out
}

func rows[K cmp.Ordered](entries []counter.Entry[K], key func(K) string, whole int) []Row {
	out := make([]Row, len(entries))
	for i, e := range entries {
		out[i] = Row{Key: key(e.Key), Count: e.Count, Percent: engine.Percent(e.Count, whole)}
	}
	return out
}

func identity(s string) string { return s }

func charKey(r rune) string { return string(r) }
