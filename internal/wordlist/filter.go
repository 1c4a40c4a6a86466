package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/passlab/internal/detect"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Matchable keeps words long enough for the dictionary matcher. Shorter
// words can never produce a hit.
func Matchable(word string) bool {
	return utf8.RuneCountInString(word) >= detect.MinWordLength
}

// SingleWord rejects entries that contain whitespace, such as phrase lists
// or "word count" frequency files.
func SingleWord(word string) bool {
	return word != "" && strings.IndexFunc(word, unicode.IsSpace) < 0
}
