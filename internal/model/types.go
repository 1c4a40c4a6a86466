// Package model defines shared data structures.
package model

import "time"

// Default analysis bounds.
const (
	DefaultMinLength = 1
	DefaultMaxLength = 32
)

// Options defines the accept filters and the analysis mode of one run.
type Options struct {
	MinLength int    `json:"min_length"`
	MaxLength int    `json:"max_length"`
	ASCIIOnly bool   `json:"ascii_only"`
	Pattern   string `json:"pattern,omitempty"`
	Enhanced  bool   `json:"enhanced"`
}

// DefaultOptions returns the default filter bounds with enhanced mode off.
func DefaultOptions() Options {
	return Options{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// Sections selects which report sections are rendered.
type Sections struct {
	Summary   bool
	Position  bool
	Followers bool
	Enhanced  bool
	Classic   bool
}

// Config defines analyze settings after flags and the config file are merged.
type Config struct {
	Input       string
	Options     Options
	Dictionary  string
	OutputDir   string
	Formats     []string
	Shards      int
	Top         int
	Positions   int
	Encoding    string
	Save        bool
	Interactive bool
	Verbose     bool
	Sections    Sections
}

// RunRecord summarizes a completed analysis run for the history store.
type RunRecord struct {
	ID          string
	StartedAt   time.Time
	EndedAt     time.Time
	Input       string
	Options     Options
	Total       int
	Valid       int
	Filtered    int
	MeanLength  float64
	MeanEntropy float64
	MinEntropy  int
	MaxEntropy  int
	DurationMs  int64
}

// LengthCount is one row of a stored length distribution.
type LengthCount struct {
	Length int
	Count  int
}

// PatternCount is one row of a stored pattern-signature ranking.
type PatternCount struct {
	Pattern string
	Count   int
}
