package report

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/verte-zerg/passlab/internal/counter"
	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/model"
)

// JSONWriter writes report documents as JSON.
type JSONWriter struct {
	output       io.Writer
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables indented output with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter writing to output. Output is compact
// unless an indent option is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// EnhancedDocument is the heuristic export of a run.
type EnhancedDocument struct {
	RepetitiveSequences   map[string]int `json:"repetitive_sequences"`
	KeyboardSequences     map[string]int `json:"keyboard_sequences"`
	DatePatternsCount     int            `json:"date_patterns_count"`
	NumericSequencesCount int            `json:"numeric_sequences_count"`
	LeetspeakCount        int            `json:"leetspeak_count"`
	CapitalizationPattern map[string]int `json:"capitalization_patterns"`
	NumberSuffixPatterns  map[string]int `json:"number_suffix_patterns"`
	SpecialCharPositions  map[string]int `json:"special_char_positions"`
	CommonWords           map[string]int `json:"common_words"`
	WordBoundaries        map[string]int `json:"word_boundaries"`
	TrigramFrequency      map[string]int `json:"trigram_frequency"`
}

// NewEnhancedDocument collects the heuristic aggregates of snap.
func NewEnhancedDocument(snap *engine.Snapshot) EnhancedDocument {
	h := snap.Heuristics
	positions := make(map[string]int, h.SpecialPositions.Len())
	for _, pos := range h.SpecialPositions.Keys() {
		positions[strconv.Itoa(pos+1)] = h.SpecialPositions.Get(pos)
	}
	return EnhancedDocument{
		RepetitiveSequences:   topMap(h.Runs, 20),
		KeyboardSequences:     topMap(h.Keyboard, 20),
		DatePatternsCount:     snap.DatePasswords(),
		NumericSequencesCount: h.NumericSequences,
		LeetspeakCount:        h.Leetspeak,
		CapitalizationPattern: topMap(h.Capitalization, 0),
		NumberSuffixPatterns:  topMap(h.NumberSuffixes, 20),
		SpecialCharPositions:  positions,
		CommonWords:           topMap(h.Words, 50),
		WordBoundaries:        topMap(h.WordBoundaries, 50),
		TrigramFrequency:      topMap(snap.Trigrams, 50),
	}
}

func topMap(c *counter.Counter[string], n int) map[string]int {
	top := c.Top(n)
	out := make(map[string]int, len(top))
	for _, e := range top {
		out[e.Key] = e.Count
	}
	return out
}

// SnapshotDocument is the full JSON export of a run.
type SnapshotDocument struct {
	RunID       string        `json:"run_id,omitempty"`
	Input       string        `json:"input"`
	GeneratedAt time.Time     `json:"generated_at"`
	ElapsedMs   int64         `json:"elapsed_ms"`
	Options     model.Options `json:"options"`
	Report      Report        `json:"report"`
}

// NewSnapshotDocument wraps r with its run metadata.
func NewSnapshotDocument(r Report, runID string) SnapshotDocument {
	return SnapshotDocument{
		RunID:       runID,
		Input:       r.Meta.Input,
		GeneratedAt: r.Meta.GeneratedAt,
		ElapsedMs:   r.Meta.Elapsed.Milliseconds(),
		Options:     r.Meta.Options,
		Report:      r,
	}
}

// Write marshals v and writes it followed by a newline.
func (w *JSONWriter) Write(v any) (int, error) {
	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}
	data = append(data, '\n')
	return w.output.Write(data)
}
