package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/verte-zerg/passlab/internal/engine"
)

func formatShare(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// WriteCharacterCSV writes every character with its count and share of all
// analyzed characters, most common first.
func WriteCharacterCSV(w io.Writer, snap *engine.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Character", "Count", "Percentage"}); err != nil {
		return err
	}
	for _, e := range snap.Chars.Top(0) {
		rec := []string{string(e.Key), strconv.Itoa(e.Count), formatShare(engine.Percent(e.Count, snap.TotalChars))}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePositionCSV writes the character counts of every position, positions
// in order and characters most common first.
func WritePositionCSV(w io.Writer, snap *engine.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Position", "Character", "Count", "Percentage"}); err != nil {
		return err
	}
	for p, chars := range snap.PositionChars {
		total := chars.Total()
		if total == 0 {
			continue
		}
		pos := strconv.Itoa(p + 1)
		for _, e := range chars.Top(0) {
			rec := []string{pos, string(e.Key), strconv.Itoa(e.Count), formatShare(engine.Percent(e.Count, total))}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePatternCSV writes every pattern signature with its share of valid
// passwords.
func WritePatternCSV(w io.Writer, snap *engine.Snapshot) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Pattern", "Count", "Percentage"}); err != nil {
		return err
	}
	for _, e := range snap.Patterns.Top(0) {
		rec := []string{e.Key, strconv.Itoa(e.Count), formatShare(engine.Percent(e.Count, snap.Valid))}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
