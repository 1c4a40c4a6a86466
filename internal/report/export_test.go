package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"csv, md", "JSON", "csv"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if want := []string{FormatCSV, FormatMarkdown, FormatJSON}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = ParseFormats(nil)
	if err != nil || !reflect.DeepEqual(got, DefaultFormats()) {
		t.Fatalf("expected defaults, got %v (%v)", got, err)
	}

	if _, err := ParseFormats([]string{"xml"}); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExportWritesEveryFormat(t *testing.T) {
	snap, r := scenarioReport(t)
	dir := filepath.Join(t.TempDir(), "out")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	paths, err := Export(dir, Bundle{Snapshot: snap, Report: r, RunID: "run-1"}, []string{FormatCSV, FormatJSON, FormatMarkdown}, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	want := []string{
		"password_summary_20240102_030405.txt",
		"character_frequency_20240102_030405.csv",
		"position_analysis_20240102_030405.csv",
		"patterns_20240102_030405.csv",
		"snapshot_20240102_030405.json",
		"enhanced_analysis_20240102_030405.json",
		"report_20240102_030405.md",
	}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}

	summary := readFile(t, filepath.Join(dir, want[0]))
	for _, line := range []string{"Password Analysis Summary", "File: corpus.txt", "Valid passwords: 4", "Length 6: 2 (50.00%)", "Length 9: 2 (50.00%)"} {
		if !strings.Contains(summary, line) {
			t.Fatalf("expected %q in summary:\n%s", line, summary)
		}
	}

	patterns := readFile(t, filepath.Join(dir, want[3]))
	if !strings.HasPrefix(patterns, "Pattern,Count,Percentage\nLllllllld,1,25.0000\n") {
		t.Fatalf("unexpected patterns csv:\n%s", patterns)
	}

	chars := readFile(t, filepath.Join(dir, want[1]))
	if !strings.Contains(chars, "s,4,13.3333\n") {
		t.Fatalf("unexpected character csv:\n%s", chars)
	}

	var doc SnapshotDocument
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(dir, want[4]))), &doc); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if doc.RunID != "run-1" || doc.ElapsedMs != 1500 || !doc.Options.Enhanced || doc.Report.Summary.Valid != 4 {
		t.Fatalf("unexpected snapshot document: %+v", doc)
	}

	var enhanced EnhancedDocument
	if err := json.Unmarshal([]byte(readFile(t, filepath.Join(dir, want[5]))), &enhanced); err != nil {
		t.Fatalf("decode enhanced: %v", err)
	}
	if enhanced.KeyboardSequences["qwerty"] != 1 || enhanced.NumericSequencesCount != 1 {
		t.Fatalf("unexpected enhanced document: %+v", enhanced)
	}
}

func TestExportSkipsEnhancedDocumentWhenDisabled(t *testing.T) {
	snap := corpusSnapshot(t, false, "abc")
	r := Build(snap, Meta{Input: "in"}, DefaultLimits())
	paths, err := Export(t.TempDir(), Bundle{Snapshot: snap, Report: r}, []string{FormatJSON}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(paths) != 1 || !strings.HasPrefix(filepath.Base(paths[0]), "snapshot_") {
		t.Fatalf("expected only the snapshot document, got %v", paths)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	snap := corpusSnapshot(t, false, "abc")
	r := Build(snap, Meta{}, DefaultLimits())
	if _, err := Export(t.TempDir(), Bundle{Snapshot: snap, Report: r}, []string{"xml"}, time.Now()); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
