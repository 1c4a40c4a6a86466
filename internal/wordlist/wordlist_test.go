package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadWordsAppliesFilters(t *testing.T) {
	path := writeList(t, "Password\n  dragon \n\nthe\nice cream\nPassword\n")
	words, err := LoadWords(path, "", Matchable, SingleWord)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"Password", "dragon", "Password"}
	if !reflect.DeepEqual(words, want) {
		t.Fatalf("expected %q, got %q", want, words)
	}
}

func TestLoadDictionaryLowercasesAndDedupes(t *testing.T) {
	path := writeList(t, "Password\nDRAGON\npassword\n")
	dict, err := LoadDictionary(path, "utf-8")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("unexpected dictionary: len=%d", dict.Len())
	}
	hits := dict.Match("MyDragon1")
	if len(hits) != 1 || hits[0].Word != "dragon" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestLoadDictionarySkipsPhrases(t *testing.T) {
	path := writeList(t, "ice cream\n12345 dragon\n  sunshine \n")
	dict, err := LoadDictionary(path, "", Matchable, SingleWord)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dict.Len() != 1 {
		t.Fatalf("expected only the single word, got len=%d", dict.Len())
	}
	if hits := dict.Match("icecream99"); len(hits) != 0 {
		t.Fatalf("phrase entry should not match: %+v", hits)
	}
	if hits := dict.Match("Sunshine1"); len(hits) != 1 || hits[0].Word != "sunshine" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestLoadDictionaryMissingFile(t *testing.T) {
	_, err := LoadDictionary(filepath.Join(t.TempDir(), "missing.txt"), "")
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadDictionaryEmptyFile(t *testing.T) {
	dict, err := LoadDictionary(writeList(t, "\n\n"), "")
	if err != nil {
		t.Fatalf("empty list should load: %v", err)
	}
	if dict.Len() != 0 {
		t.Fatalf("expected empty dictionary")
	}
}
