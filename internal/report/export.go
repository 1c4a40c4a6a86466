package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/verte-zerg/passlab/internal/engine"
)

// Export formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// TimestampLayout is the file name suffix of exported files.
const TimestampLayout = "20060102_150405"

// ErrUnknownFormat reports an unsupported export format name.
var ErrUnknownFormat = errors.New("unknown export format")

// DefaultFormats returns the formats written when none are selected.
func DefaultFormats() []string {
	return []string{FormatCSV, FormatJSON}
}

// ParseFormats normalizes a list of format names. Entries may hold several
// comma separated names; "md" is accepted for markdown. Duplicates are
// dropped and an empty list yields DefaultFormats.
func ParseFormats(values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			switch name {
			case "":
				continue
			case "md":
				name = FormatMarkdown
			case FormatCSV, FormatJSON, FormatMarkdown:
			default:
				return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
			}
			if !slices.Contains(out, name) {
				out = append(out, name)
			}
		}
	}
	if len(out) == 0 {
		return DefaultFormats(), nil
	}
	return out, nil
}

// Bundle is everything one export writes.
type Bundle struct {
	Snapshot *engine.Snapshot
	Report   Report
	RunID    string
}

// Export writes the selected formats into dir, creating it when needed, and
// returns the written paths. csv writes the text summary and the character,
// position and pattern tables; json writes the full snapshot document and,
// in enhanced mode, the heuristic document; markdown writes the report.
func Export(dir string, b Bundle, formats []string, now time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	ts := now.Format(TimestampLayout)
	var written []string
	write := func(name, ext string, fn func(f *os.File) error) error {
		path := filepath.Join(dir, name+"_"+ts+ext)
		if err := writeFile(path, fn); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	for _, format := range formats {
		var err error
		switch format {
		case FormatCSV:
			err = errors.Join(
				write("password_summary", ".txt", func(f *os.File) error { return WriteSummaryText(f, b.Report) }),
				write("character_frequency", ".csv", func(f *os.File) error { return WriteCharacterCSV(f, b.Snapshot) }),
				write("position_analysis", ".csv", func(f *os.File) error { return WritePositionCSV(f, b.Snapshot) }),
				write("patterns", ".csv", func(f *os.File) error { return WritePatternCSV(f, b.Snapshot) }),
			)
		case FormatJSON:
			err = write("snapshot", ".json", func(f *os.File) error {
				_, err := NewJSONWriter(f, WithPrettyPrint()).Write(NewSnapshotDocument(b.Report, b.RunID))
				return err
			})
			if err == nil && b.Snapshot.Enhanced {
				err = write("enhanced_analysis", ".json", func(f *os.File) error {
					_, err := NewJSONWriter(f, WithIndent("", "    ")).Write(NewEnhancedDocument(b.Snapshot))
					return err
				})
			}
		case FormatMarkdown:
			err = write("report", ".md", func(f *os.File) error {
				_, err := NewMarkdownWriter(f).Write(b.Report)
				return err
			})
		default:
			err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

func writeFile(path string, fn func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := fn(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
