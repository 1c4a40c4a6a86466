// Package wordlist loads dictionary files for word matching.
package wordlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/verte-zerg/passlab/internal/detect"
	"github.com/verte-zerg/passlab/internal/ingest"
)

// LoadWords reads one word per line from the provided file path. Lines are
// decoded with the given encoding and trimmed before filtering; blank lines
// and words rejected by any filter are skipped.
func LoadWords(path, encoding string, filters ...FilterFunc) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	src, err := ingest.NewDecoder(file, encoding)
	if err != nil {
		return nil, err
	}
	lines := ingest.NewLineReader(src)
	var words []string
	for {
		line, ok := lines.Next()
		if !ok {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" || !keep(line, filters) {
			continue
		}
		words = append(words, line)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// LoadDictionary builds a dictionary from a word list file. An empty file
// yields an empty dictionary.
func LoadDictionary(path, encoding string, filters ...FilterFunc) (*detect.Dictionary, error) {
	words, err := LoadWords(path, encoding, filters...)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary %s: %w", path, err)
	}
	return detect.NewDictionary(words), nil
}

func keep(word string, filters []FilterFunc) bool {
	for _, f := range filters {
		if !f(word) {
			return false
		}
	}
	return true
}
