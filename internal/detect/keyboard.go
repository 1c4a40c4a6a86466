// Package detect implements heuristic detectors that recognise structural
// patterns in a single password.
package detect

import (
	"strings"
	"unicode/utf8"
)

// Layout is a named keyboard layout given as ordered rows.
type Layout struct {
	Name string
	Rows []string
}

// Layouts are searched in this order; the first match wins, so the order is
// part of the detector's output contract.
var Layouts = []Layout{
	{Name: "QWERTY", Rows: []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}},
	{Name: "AZERTY", Rows: []string{"azertyuiop", "qsdfghjklm", "wxcvbn"}},
	{Name: "Numeric", Rows: []string{"123", "456", "789", "0"}},
}

// KeyboardMatch is the first keyboard walk found in a password.
type KeyboardMatch struct {
	Layout   string
	Sequence string
}

// Keyboard searches the default layouts. See KeyboardIn.
func Keyboard(pw string) (KeyboardMatch, bool) {
	return KeyboardIn(Layouts, pw)
}

// KeyboardIn slides a window of min(len(pw), len(row)) characters across
// every row of every layout and reports the first window, or reversed window,
// that occurs in the lower-cased password. Iteration is layout, row, offset,
// forward before reverse.
func KeyboardIn(layouts []Layout, pw string) (KeyboardMatch, bool) {
	if pw == "" {
		return KeyboardMatch{}, false
	}
	lower := strings.ToLower(pw)
	length := utf8.RuneCountInString(pw)
	for _, layout := range layouts {
		for _, row := range layout.Rows {
			keys := []rune(row)
			size := min(length, len(keys))
			for i := 0; i+size <= len(keys); i++ {
				window := string(keys[i : i+size])
				if strings.Contains(lower, window) {
					return KeyboardMatch{Layout: layout.Name, Sequence: window}, true
				}
				if rev := reverse(window); strings.Contains(lower, rev) {
					return KeyboardMatch{Layout: layout.Name, Sequence: rev}, true
				}
			}
		}
	}
	return KeyboardMatch{}, false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
