package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// maxCellWidth bounds cells holding password fragments such as runs or
// dictionary words.
const maxCellWidth = 32

type table struct {
	headers    []string
	rows       [][]string
	rightAlign map[int]bool
}

func newTable(headers ...string) *table {
	return &table{headers: headers, rightAlign: map[int]bool{}}
}

func (t *table) alignRight(cols ...int) *table {
	for _, c := range cols {
		t.rightAlign[c] = true
	}
	return t
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) lines() []string {
	return formatTable(t.headers, t.rows, t.rightAlign)
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			if w := displayWidth(cellAt(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+2)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
		lines = append(lines, separator(widths))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return clip(row[i])
	}
	return ""
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cellAt(row, i), widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// clip shortens a cell to maxCellWidth columns and makes invisible
// characters printable.
func clip(value string) string {
	value = visible(value)
	if displayWidth(value) <= maxCellWidth {
		return value
	}
	return runewidth.Truncate(value, maxCellWidth, "…")
}

// visible replaces whitespace characters so that a single space or tab can
// be told apart in a table cell.
func visible(value string) string {
	switch value {
	case " ":
		return "' '"
	case "\t":
		return `\t`
	}
	return value
}

// displayWidth ignores ANSI styling so that styled cells still align.
func displayWidth(value string) int {
	return lipgloss.Width(value)
}
