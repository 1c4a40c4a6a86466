package detect

import (
	"reflect"
	"testing"
)

func TestKeyboard(t *testing.T) {
	cases := []struct {
		pw     string
		want   KeyboardMatch
		wantOK bool
	}{
		{"qwerty", KeyboardMatch{"QWERTY", "qwerty"}, true},
		{"QWERTY", KeyboardMatch{"QWERTY", "qwerty"}, true},
		{"ytrewq", KeyboardMatch{"QWERTY", "ytrewq"}, true},
		{"asdf", KeyboardMatch{"QWERTY", "asdf"}, true},
		{"azer", KeyboardMatch{"AZERTY", "azer"}, true},
		{"123456", KeyboardMatch{"Numeric", "123"}, true},
		{"pass0word", KeyboardMatch{"Numeric", "0"}, true},
		{"qwerty1", KeyboardMatch{}, false},
		{"Password1", KeyboardMatch{}, false},
		{"", KeyboardMatch{}, false},
		{"xqwertyuiopx", KeyboardMatch{"QWERTY", "qwertyuiop"}, true},
	}
	for _, tc := range cases {
		got, ok := Keyboard(tc.pw)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("Keyboard(%q): expected %+v/%v, got %+v/%v", tc.pw, tc.want, tc.wantOK, got, ok)
		}
	}
}

func TestKeyboardFirstMatchFollowsLayoutOrder(t *testing.T) {
	// "qsdf" lies on the AZERTY home row only; "sdf" would match QWERTY but
	// the window is the full password length.
	got, ok := Keyboard("qsdf")
	if !ok || got.Layout != "AZERTY" {
		t.Fatalf("expected AZERTY match, got %+v/%v", got, ok)
	}
	custom := []Layout{{Name: "B", Rows: []string{"sdf"}}, {Name: "A", Rows: []string{"sdf"}}}
	got, ok = KeyboardIn(custom, "sdf")
	if !ok || got.Layout != "B" {
		t.Fatalf("expected first layout to win, got %+v", got)
	}
}

func TestNumericSequence(t *testing.T) {
	cases := map[string]bool{
		"123456":   true,
		"abc321":   true,
		"x789y":    true,
		"135":      false,
		"12":       false,
		"1a2b3":    false,
		"909":      false,
		"password": false,
	}
	for pw, want := range cases {
		if got := NumericSequence(pw); got != want {
			t.Fatalf("NumericSequence(%q): expected %v, got %v", pw, want, got)
		}
	}
}

func TestHasDate(t *testing.T) {
	cases := map[string]bool{
		"19850612":   true,
		"12251999":   true,
		"199001":     true,
		"011990":     true,
		"061285":     true,
		"john1985":   false,
		"abc 200112": true,
		"password":   false,
		"12345":      false,
		"é19990101":  false,
		"19990101é":  false,
		"x_199001":   false,
		"-19990101-": true,
		"ab!011990":  true,
	}
	for pw, want := range cases {
		if got := HasDate(pw); got != want {
			t.Fatalf("HasDate(%q): expected %v, got %v", pw, want, got)
		}
	}
}

func TestIsLeetspeak(t *testing.T) {
	if !IsLeetspeak("p@ssw0rd") {
		t.Fatalf("expected leetspeak")
	}
	if !IsLeetspeak("123456") {
		t.Fatalf("all-digit passwords count as leetspeak")
	}
	if IsLeetspeak("password") {
		t.Fatalf("plain word is not leetspeak")
	}
}

func TestRunsRecordsMaximalRunsOnce(t *testing.T) {
	cases := map[string][]string{
		"aaaaab":    {"aaaaa"},
		"aaabbbb":   {"aaa", "bbbb"},
		"aabb":      nil,
		"x111y222z": {"111", "222"},
		"":          nil,
	}
	for pw, want := range cases {
		if got := Runs(pw); !reflect.DeepEqual(got, want) {
			t.Fatalf("Runs(%q): expected %v, got %v", pw, want, got)
		}
	}
}

func TestCapitalization(t *testing.T) {
	cases := []struct {
		pw     string
		want   string
		wantOK bool
	}{
		{"Password1", CapFirstLetter, true},
		{"myPassword", CapCamelCase, true},
		{"PassWord", CapRandom, true},
		{"pASSWORD", CapCamelCase, true},
		{"password", "", false},
		{"PASSWORD", "", false},
		{"1Password", CapRandom, true},
	}
	for _, tc := range cases {
		got, ok := Capitalization(tc.pw)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Capitalization(%q): expected %q/%v, got %q/%v", tc.pw, tc.want, tc.wantOK, got, ok)
		}
	}
}

func TestNumberSuffix(t *testing.T) {
	if s, ok := NumberSuffix("password123"); !ok || s != "123" {
		t.Fatalf("expected suffix 123, got %q/%v", s, ok)
	}
	for _, pw := range []string{"123password", "pass1word2", "password", "pass_123"} {
		if _, ok := NumberSuffix(pw); ok {
			t.Fatalf("expected no suffix for %q", pw)
		}
	}
}

func TestSpecialPositions(t *testing.T) {
	got := SpecialPositions("a!b@c d")
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("unexpected positions: %v", got)
	}
}

func TestDictionaryMatch(t *testing.T) {
	dict := NewDictionary([]string{"Pass", "word", "the", "pass"})
	if dict.Len() != 3 {
		t.Fatalf("expected 3 distinct words, got %d", dict.Len())
	}
	hits := dict.Match("MyPass99")
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %+v", hits)
	}
	hit := hits[0]
	if hit.Word != "pass" || !hit.HasPrefix || hit.Prefix != 'y' || !hit.HasSuffix || hit.Suffix != '9' {
		t.Fatalf("unexpected hit: %+v", hit)
	}

	hits = dict.Match("password")
	if len(hits) != 2 || hits[0].Word != "pass" || hits[1].Word != "word" {
		t.Fatalf("expected pass and word hits, got %+v", hits)
	}
	if hits[0].HasPrefix || !hits[0].HasSuffix || hits[1].HasSuffix || hits[1].Prefix != 's' {
		t.Fatalf("unexpected boundaries: %+v", hits)
	}

	if got := dict.Match("theme"); got != nil {
		t.Fatalf("short words must be ignored, got %+v", got)
	}
	var empty *Dictionary
	if empty.Match("password") != nil {
		t.Fatalf("nil dictionary should not match")
	}
}
