package report

import (
	"fmt"
	"io"
)

// WriteSummaryText writes the plain-text run summary with the full length
// distribution.
func WriteSummaryText(w io.Writer, r Report) error {
	s := r.Summary
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}
	printf("Password Analysis Summary\n")
	printf("File: %s\n", r.Meta.Input)
	printf("Date: %s\n", r.Meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	printf("Total passwords: %d\n", s.Total)
	printf("Valid passwords: %d\n", s.Valid)
	printf("Filtered passwords: %d\n\n", s.Filtered)

	printf("Length Distribution:\n")
	for _, row := range s.LengthDist {
		printf("Length %s: %d (%.2f%%)\n", row.Key, row.Count, row.Percent)
	}
	return err
}
