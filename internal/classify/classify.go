// Package classify maps characters to categories and passwords to pattern
// signatures, entropy estimates and complexity levels.
package classify

import (
	"fmt"
	"math/bits"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the class of a single character.
type Category int

// Character categories, in report order.
const (
	Lowercase Category = iota
	Uppercase
	Digit
	Special
)

// Categories lists every category in report order.
var Categories = []Category{Lowercase, Uppercase, Digit, Special}

// SpecialChars is the allow-list of special characters used for display
// filtering, complexity and special-position counting.
const SpecialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|~`"

var alphabetSizes = [...]int{
	Lowercase: 26,
	Uppercase: 26,
	Digit:     10,
	Special:   33,
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Lowercase:
		return "lowercase"
	case Uppercase:
		return "uppercase"
	case Digit:
		return "digit"
	default:
		return "special"
	}
}

// Symbol returns the pattern signature symbol for the category.
func (c Category) Symbol() byte {
	switch c {
	case Lowercase:
		return 'l'
	case Uppercase:
		return 'L'
	case Digit:
		return 'd'
	default:
		return 's'
	}
}

// AlphabetSize returns the fixed alphabet size used by Entropy.
func (c Category) AlphabetSize() int {
	return alphabetSizes[c]
}

// CategoryOf classifies r. Anything that is not an ASCII letter or digit is
// special.
func CategoryOf(r rune) Category {
	switch {
	case r >= 'a' && r <= 'z':
		return Lowercase
	case r >= 'A' && r <= 'Z':
		return Uppercase
	case r >= '0' && r <= '9':
		return Digit
	default:
		return Special
	}
}

// IsSpecial reports whether r is in the special-character allow-list.
func IsSpecial(r rune) bool {
	return r < utf8.RuneSelf && strings.ContainsRune(SpecialChars, r)
}

// IsASCIIPrintable reports whether every character of s is in 32..126.
func IsASCIIPrintable(s string) bool {
	for _, r := range s {
		if r < 32 || r > 126 {
			return false
		}
	}
	return true
}

// Signature maps every character of pw to its category symbol.
func Signature(pw string) string {
	var b strings.Builder
	b.Grow(len(pw))
	for _, r := range pw {
		b.WriteByte(CategoryOf(r).Symbol())
	}
	return b.String()
}

// Entropy returns length * floor(log2(alphabet)), where alphabet is the sum
// of the alphabet sizes of the categories present in pw. It panics on an
// empty password.
func Entropy(pw string) int {
	if pw == "" {
		panic("classify: entropy of empty password")
	}
	var present [len(alphabetSizes)]bool
	length := 0
	for _, r := range pw {
		present[CategoryOf(r)] = true
		length++
	}
	space := 0
	for c, ok := range present {
		if ok {
			space += alphabetSizes[c]
		}
	}
	return length * (bits.Len(uint(space)) - 1)
}

// Complexity returns how many of lowercase, uppercase, digit and
// allow-listed special characters occur in pw (0-4). Letters and digits are
// recognised in any script.
func Complexity(pw string) int {
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case IsSpecial(r):
			special = true
		}
	}
	level := 0
	for _, ok := range []bool{lower, upper, digit, special} {
		if ok {
			level++
		}
	}
	return level
}

const specialClass = "[!@#$%^&*()_+\\-=\\[\\]{};:'\",.<>/?\\\\|`~]"

// PatternRegexp compiles a pattern template where L, l, d and s stand for an
// uppercase letter, a lowercase letter, a digit and a special character; any
// other character matches itself. The expression is anchored at both ends.
// Templates with invalid UTF-8 or control characters are rejected.
func PatternRegexp(template string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteByte('^')
	for i, r := range template {
		if r == utf8.RuneError || unicode.IsControl(r) {
			return nil, fmt.Errorf("unsupported character %q at offset %d", r, i)
		}
		switch r {
		case 'L':
			b.WriteString("[A-Z]")
		case 'l':
			b.WriteString("[a-z]")
		case 'd':
			b.WriteString("[0-9]")
		case 's':
			b.WriteString(specialClass)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteByte('$')
	return regexp.Compile(b.String())
}
