package detect

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/verte-zerg/passlab/internal/classify"
)

// Capitalization styles.
const (
	CapFirstLetter = "First letter"
	CapAllCaps     = "ALL CAPS"
	CapCamelCase   = "camelCase"
	CapRandom      = "Random"
)

// datePatterns are anchored at the start of the text they are tried on.
// HasDate supplies the Unicode word boundaries on both sides.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(19|20)\p{Nd}{2}[01]\p{Nd}[0-3]\p{Nd}`), // YYYYMMDD
	regexp.MustCompile(`^[0-3]\p{Nd}[01]\p{Nd}(19|20)\p{Nd}{2}`), // DDMMYYYY
	regexp.MustCompile(`^[01]\p{Nd}[0-3]\p{Nd}(19|20)\p{Nd}{2}`), // MMDDYYYY
	regexp.MustCompile(`^(19|20)\p{Nd}{2}[01]\p{Nd}`),            // YYYYMM
	regexp.MustCompile(`^[01]\p{Nd}(19|20)\p{Nd}{2}`),            // MMYYYY
	regexp.MustCompile(`^[01]\p{Nd}[0-3]\p{Nd}\p{Nd}{2}`),        // MMDDYY
}

var numberSuffix = regexp.MustCompile(`^([a-zA-Z]+)([0-9]+)$`)

var leetMap = map[rune]rune{
	'4': 'a', '@': 'a', '8': 'b', '(': 'c', '3': 'e',
	'6': 'g', '9': 'g', '1': 'i', '!': 'i', '0': 'o',
	'5': 's', '$': 's', '7': 't', '+': 't', '2': 'z',
}

// NumericSequence reports whether any three consecutive characters are
// digits ascending or descending by one. Scanning stops at the first hit.
func NumericSequence(pw string) bool {
	runes := []rune(pw)
	for i := 0; i+3 <= len(runes); i++ {
		if isStepRun(runes[i : i+3]) {
			return true
		}
	}
	return false
}

func isStepRun(window []rune) bool {
	for _, r := range window {
		if r < '0' || r > '9' {
			return false
		}
	}
	up, down := true, true
	for i := 1; i < len(window); i++ {
		d := window[i] - window[i-1]
		up = up && d == 1
		down = down && d == -1
	}
	return up || down
}

// HasDate reports whether pw contains a 6-8 digit date-like substring that
// is not glued to a letter, digit or underscore on either side. Any Unicode
// letter or digit counts as a word character, so "é19990101" has no date.
func HasDate(pw string) bool {
	prevWord := false
	for i, r := range pw {
		if !prevWord {
			rest := pw[i:]
			for _, re := range datePatterns {
				loc := re.FindStringIndex(rest)
				if loc == nil {
					continue
				}
				next, size := utf8.DecodeRuneInString(rest[loc[1]:])
				if size == 0 || !isWordRune(next) {
					return true
				}
			}
		}
		prevWord = isWordRune(r)
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// IsLeetspeak reports whether any character of pw is a common leetspeak
// substitute. This is a presence test, so all-digit passwords qualify.
func IsLeetspeak(pw string) bool {
	for _, r := range pw {
		if _, ok := leetMap[r]; ok {
			return true
		}
	}
	return false
}

// Runs returns each maximal run of three or more identical consecutive
// characters, in order of appearance.
func Runs(pw string) []string {
	runes := []rune(pw)
	var out []string
	for i := 0; i < len(runes); {
		j := i + 1
		for j < len(runes) && runes[j] == runes[i] {
			j++
		}
		if j-i >= 3 {
			out = append(out, string(runes[i:j]))
		}
		i = j
	}
	return out
}

// Capitalization classifies passwords that mix upper and lower case letters.
// ok is false when pw does not contain both.
func Capitalization(pw string) (style string, ok bool) {
	runes := []rune(pw)
	var hasUpper, hasLower bool
	for _, r := range runes {
		hasUpper = hasUpper || unicode.IsUpper(r)
		hasLower = hasLower || unicode.IsLower(r)
	}
	if !hasUpper || !hasLower {
		return "", false
	}
	switch {
	case unicode.IsUpper(runes[0]) && lettersAll(runes[1:], unicode.IsLower):
		return CapFirstLetter, true
	case lettersAll(runes, unicode.IsUpper):
		return CapAllCaps, true
	case unicode.IsLower(runes[0]) && hasCamelHump(runes):
		return CapCamelCase, true
	default:
		return CapRandom, true
	}
}

func lettersAll(runes []rune, pred func(rune) bool) bool {
	for _, r := range runes {
		if unicode.IsLetter(r) && !pred(r) {
			return false
		}
	}
	return true
}

func hasCamelHump(runes []rune) bool {
	for i := 1; i < len(runes); i++ {
		if unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]) {
			return true
		}
	}
	return false
}

// NumberSuffix returns the trailing digits of a password made of letters
// followed by digits.
func NumberSuffix(pw string) (string, bool) {
	m := numberSuffix.FindStringSubmatch(pw)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// SpecialPositions returns the indexes of allow-listed special characters.
func SpecialPositions(pw string) []int {
	var out []int
	i := 0
	for _, r := range pw {
		if classify.IsSpecial(r) {
			out = append(out, i)
		}
		i++
	}
	return out
}
