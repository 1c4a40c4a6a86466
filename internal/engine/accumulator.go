// Package engine accumulates password statistics in a single pass.
package engine

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/verte-zerg/passlab/internal/classify"
	"github.com/verte-zerg/passlab/internal/detect"
	"github.com/verte-zerg/passlab/internal/model"
)

// Accumulator owns the running aggregates of one run or shard. Updates are
// applied one credential at a time under a write lock, so Snapshot only ever
// observes fully applied credentials.
type Accumulator struct {
	mu       sync.RWMutex
	opts     model.Options
	pattern  *regexp.Regexp
	dict     *detect.Dictionary
	logger   *slog.Logger
	warnings []error
	agg      *Snapshot
}

// Option configures an Accumulator.
type Option func(*Accumulator)

// WithDictionary enables dictionary matching in enhanced mode.
func WithDictionary(dict *detect.Dictionary) Option {
	return func(a *Accumulator) {
		a.dict = dict
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Accumulator) {
		a.logger = logger
	}
}

// New creates an Accumulator. A pattern template that fails to compile
// disables pattern filtering and is reported through Warnings.
func New(opts model.Options, options ...Option) *Accumulator {
	if opts.MaxLength <= 0 {
		opts.MaxLength = model.DefaultMaxLength
	}
	if opts.MinLength < 0 {
		opts.MinLength = 0
	}
	a := &Accumulator{opts: opts}
	for _, opt := range options {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if opts.Pattern != "" {
		re, err := classify.PatternRegexp(opts.Pattern)
		if err != nil {
			a.warn(fmt.Errorf("%w: %q: %v", ErrInvalidPattern, opts.Pattern, err))
		} else {
			a.pattern = re
		}
	}
	a.agg = a.emptyAggregates()
	return a
}

// Options returns the options the accumulator was built with.
func (a *Accumulator) Options() model.Options {
	return a.opts
}

// Warnings returns recoverable problems found while configuring the run.
func (a *Accumulator) Warnings() []error {
	return append([]error(nil), a.warnings...)
}

func (a *Accumulator) warn(err error) {
	a.warnings = append(a.warnings, err)
	a.logger.Warn("configuration problem", "error", err)
}

// Accept counts pw and applies the filters in order: printable ASCII,
// length bounds, pattern template. Rejected passwords only increment the
// filtered counter.
func (a *Accumulator) Accept(pw string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accept(pw)
}

func (a *Accumulator) accept(pw string) bool {
	a.agg.Total++
	if !a.passes(pw) {
		a.agg.Filtered++
		return false
	}
	return true
}

func (a *Accumulator) passes(pw string) bool {
	if a.opts.ASCIIOnly && !classify.IsASCIIPrintable(pw) {
		return false
	}
	n := utf8.RuneCountInString(pw)
	if n < a.opts.MinLength || n > a.opts.MaxLength {
		return false
	}
	if a.pattern != nil && !a.pattern.MatchString(pw) {
		return false
	}
	return true
}

// Update folds an accepted password into every aggregate, plus the
// heuristic aggregates in enhanced mode. An empty password has no entropy
// estimate and no characters; it still counts towards the valid, length,
// pattern and complexity totals.
func (a *Accumulator) Update(pw string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.update(pw)
}

// Add runs Accept and, when it passes, Update, as one atomic step.
func (a *Accumulator) Add(pw string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.accept(pw) {
		return false
	}
	a.update(pw)
	return true
}

func (a *Accumulator) update(pw string) {
	s := a.agg
	runes := []rune(pw)
	s.Valid++
	s.Lengths.Inc(len(runes))
	s.Patterns.Inc(classify.Signature(pw))
	s.Complexity.Inc(classify.Complexity(pw))
	if len(runes) == 0 {
		return
	}
	s.Entropies.Inc(classify.Entropy(pw))

	for i, r := range runes {
		s.Chars.Inc(r)
		s.Categories.Inc(classify.CategoryOf(r))
		if i >= s.MaxLength {
			continue
		}
		s.PositionChars[i].Inc(r)
		s.PositionCategories[i].Inc(classify.CategoryOf(r))
		if i+1 < len(runes) {
			s.Followers.Inc(r, runes[i+1])
			s.PositionFollowers[i].Inc(r, runes[i+1])
		}
	}
	s.TotalChars += len(runes)

	for i := 0; i+3 <= len(runes); i++ {
		s.Trigrams.Inc(string(runes[i : i+3]))
	}

	if a.opts.Enhanced {
		a.enhance(pw)
	}
}

func (a *Accumulator) enhance(pw string) {
	h := &a.agg.Heuristics
	for _, run := range detect.Runs(pw) {
		h.Runs.Inc(run)
	}
	if m, ok := detect.Keyboard(pw); ok {
		h.Keyboard.Inc(m.Sequence)
	}
	if detect.NumericSequence(pw) {
		h.NumericSequences++
	}
	if detect.HasDate(pw) {
		h.Dates.Inc(pw)
	}
	if detect.IsLeetspeak(pw) {
		h.Leetspeak++
	}
	if suffix, ok := detect.NumberSuffix(pw); ok {
		h.NumberSuffixes.Inc(suffix)
	}
	for _, pos := range detect.SpecialPositions(pw) {
		h.SpecialPositions.Inc(pos)
	}
	if style, ok := detect.Capitalization(pw); ok {
		h.Capitalization.Inc(style)
	}
	for _, hit := range a.dict.Match(pw) {
		h.Words.Inc(hit.Word)
		h.WordsDetected++
		if hit.HasPrefix {
			h.WordBoundaries.Inc("prefix_" + string(hit.Prefix))
		}
		if hit.HasSuffix {
			h.WordBoundaries.Inc("suffix_" + string(hit.Suffix))
		}
	}
}

// Snapshot returns a private copy of the current aggregates. It never
// mutates the accumulator and may be called while another goroutine is
// adding passwords.
func (a *Accumulator) Snapshot() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.agg.Clone()
}

// Merge adds the aggregates of other into a.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil || other == a {
		return
	}
	snap := other.Snapshot()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.agg.Merge(snap)
}

// Fork returns an empty accumulator with the same options, compiled pattern
// and dictionary. Warnings are not repeated.
func (a *Accumulator) Fork() *Accumulator {
	return &Accumulator{
		opts:    a.opts,
		pattern: a.pattern,
		dict:    a.dict,
		logger:  a.logger,
		agg:     a.emptyAggregates(),
	}
}

func (a *Accumulator) emptyAggregates() *Snapshot {
	agg := newSnapshot(a.opts.MaxLength, a.opts.Enhanced)
	agg.DictionarySize = a.dict.Len()
	return agg
}
