package detect

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MinWordLength is the shortest dictionary word the matcher considers.
const MinWordLength = 4

// WordHit is one dictionary word found inside a password, with the
// characters immediately around its first occurrence.
type WordHit struct {
	Word      string
	Prefix    rune
	HasPrefix bool
	Suffix    rune
	HasSuffix bool
}

// Dictionary is a read-only set of lower-cased words.
type Dictionary struct {
	words []string
}

// NewDictionary lower-cases and de-duplicates words. Words are kept sorted so
// matches are reported in a stable order.
func NewDictionary(words []string) *Dictionary {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return &Dictionary{words: out}
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// Match returns a hit for every word of at least MinWordLength characters
// contained in the lower-cased password. Each word contributes independently.
// Cost is O(words * len(pw)).
func (d *Dictionary) Match(pw string) []WordHit {
	if d.Len() == 0 || pw == "" {
		return nil
	}
	lower := strings.ToLower(pw)
	orig := []rune(pw)
	lowerRunes := []rune(lower)
	// Boundaries come from the original text unless lower-casing changed
	// the character count.
	boundary := orig
	if len(orig) != len(lowerRunes) {
		boundary = lowerRunes
	}

	var hits []WordHit
	for _, word := range d.words {
		wordLen := utf8.RuneCountInString(word)
		if wordLen < MinWordLength {
			continue
		}
		idx := strings.Index(lower, word)
		if idx < 0 {
			continue
		}
		start := utf8.RuneCountInString(lower[:idx])
		end := start + wordLen
		hit := WordHit{Word: word}
		if start > 0 {
			hit.Prefix, hit.HasPrefix = boundary[start-1], true
		}
		if end < len(boundary) {
			hit.Suffix, hit.HasSuffix = boundary[end], true
		}
		hits = append(hits, hit)
	}
	return hits
}
