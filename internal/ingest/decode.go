// Package ingest reads password lists line by line and feeds them to
// accumulators.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "utf-8"

// NewDecoder wraps r so that it yields UTF-8. Invalid byte sequences become
// U+FFFD instead of failing the read. A leading byte order mark is dropped
// for UTF-8 input. name is any WHATWG encoding label.
func NewDecoder(r io.Reader, name string) (io.Reader, error) {
	label := strings.ToLower(strings.TrimSpace(name))
	if label == "" || label == DefaultEncoding || label == "utf8" {
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", name, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// LineReader yields whitespace-trimmed lines. Blank lines are returned as
// empty strings so that they are still counted.
type LineReader struct {
	r   *bufio.Reader
	err error
}

// NewLineReader creates a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next line. ok is false at end of input or on error; Err
// reports the error.
func (l *LineReader) Next() (line string, ok bool) {
	if l.err != nil {
		return "", false
	}
	s, err := l.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.err = fmt.Errorf("failed to read input: %w", err)
			return "", false
		}
		l.err = io.EOF
		if s == "" {
			return "", false
		}
	}
	return strings.TrimSpace(s), true
}

// Err returns the first read error other than io.EOF.
func (l *LineReader) Err() error {
	if errors.Is(l.err, io.EOF) {
		return nil
	}
	return l.err
}
