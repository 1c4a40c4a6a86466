package wordlist

import "testing"

func TestFilters(t *testing.T) {
	if !Matchable("pass") || Matchable("the") || !Matchable("über") {
		t.Fatalf("unexpected Matchable results")
	}
	if !SingleWord("password") || SingleWord("pass word") || SingleWord("") {
		t.Fatalf("unexpected SingleWord results")
	}
}
