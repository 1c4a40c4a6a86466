package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/verte-zerg/passlab/internal/model"
	"golang.org/x/term"
)

const (
	terminalWidthBackup = 80
	minHistogramWidth   = 10
)

type styles struct {
	title     lipgloss.Style
	heading   lipgloss.Style
	muted     lipgloss.Style
	highlight lipgloss.Style
	good      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:     r.NewStyle().Bold(true).Underline(true),
		heading:   r.NewStyle().Bold(true),
		muted:     r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		highlight: r.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true),
		good:      r.NewStyle().Foreground(lipgloss.Color("#52C41A")),
	}
}

// Console renders a report as text tables. Color is used only when the
// writer is a terminal and NO_COLOR is unset.
type Console struct {
	w     io.Writer
	st    styles
	width int
	err   error
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w, st: newStyles(w), width: terminalWidth(w)}
}

// Render writes the selected sections of r.
func (c *Console) Render(r Report, sections model.Sections) error {
	if sections.Summary {
		c.summary(r)
		c.characters(r.Characters)
	}
	if sections.Position {
		c.positions(r.Positions)
	}
	if sections.Followers {
		c.followers(r.Followers)
	}
	if sections.Enhanced && r.Enhanced != nil {
		c.enhanced(r.Enhanced, r.Summary.Valid)
	}
	if sections.Classic {
		c.classic(r.Classic)
	}
	return c.err
}

func (c *Console) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = fmt.Fprintf(c.w, format, args...)
}

func (c *Console) title(s string) {
	c.printf("\n%s\n", c.st.title.Render(s))
}

func (c *Console) heading(s string) {
	c.printf("\n%s\n", c.st.heading.Render(s))
}

func (c *Console) table(t *table) {
	for _, line := range t.lines() {
		c.printf("%s\n", line)
	}
}

func (c *Console) rowTable(keyHeader string, rows []Row) {
	t := newTable(keyHeader, "Count", "Percentage").alignRight(1, 2)
	for _, r := range rows {
		t.add(r.Key, strconv.Itoa(r.Count), pct(r.Percent))
	}
	c.table(t)
}

func (c *Console) summary(r Report) {
	s := r.Summary
	c.title("PASSWORD ANALYSIS SUMMARY")
	c.printf("\nAnalyzed %d passwords from %s\n", s.Valid, r.Meta.Input)
	c.printf("Total: %d  Valid: %d  Filtered: %d\n", s.Total, s.Valid, s.Filtered)
	if r.Meta.Elapsed > 0 {
		c.printf("%s\n", c.st.muted.Render(fmt.Sprintf("Analysis completed in %.2f seconds.", r.Meta.Elapsed.Seconds())))
	}

	if s.Valid > 0 {
		c.heading("Password Length Statistics:")
		c.printf("Average length: %.2f characters\n", s.MeanLength)
		c.printf("Minimum length: %d characters\n", s.MinLength)
		c.printf("Maximum length: %d characters\n", s.MaxLength)

		c.heading("Most Common Lengths:")
		c.rowTable("Length", s.Lengths)
	}

	c.heading("Most Common Patterns:")
	c.rowTable("Pattern", s.Patterns)

	if s.Valid > 0 {
		c.heading("Password Entropy:")
		c.printf("Average entropy: %.2f bits\n", s.MeanEntropy)
		c.printf("Minimum entropy: %d bits\n", s.MinEntropy)
		c.printf("Maximum entropy: %d bits\n", s.MaxEntropy)
	}

	c.heading("Password Complexity Distribution:")
	t := newTable("Level", "Description", "Count", "Percentage").alignRight(0, 2, 3)
	for _, row := range s.Complexity {
		t.add(strconv.Itoa(row.Level), row.Description, strconv.Itoa(row.Count), pct(row.Percent))
	}
	c.table(t)
}

func (c *Console) characters(ch Characters) {
	c.title("CHARACTER ANALYSIS")
	if ch.TotalChars == 0 {
		c.printf("\nNo characters analyzed.\n")
		return
	}
	c.heading("Overall Character Frequency:")
	c.rowTable("Character", ch.Top)
	c.heading("Character Category Distribution:")
	c.rowTable("Category", ch.Categories)
}

func (c *Console) positions(rows []PositionRow) {
	c.title("POSITION ANALYSIS")
	c.heading("Character Type Distribution by Position:")
	t := newTable("Position", "Lowercase %", "Uppercase %", "Digit %", "Special %", "Most Common Type").alignRight(0, 1, 2, 3, 4)
	for _, r := range rows {
		t.add(strconv.Itoa(r.Position), pct(r.Lower), pct(r.Upper), pct(r.Digit), pct(r.Special), r.Dominant)
	}
	c.table(t)

	c.heading("Most Common Characters by Position:")
	for _, r := range rows {
		c.printf("\n%s\n", c.st.heading.Render(fmt.Sprintf("Position %d:", r.Position)))
		c.rowTable("Character", r.Top)
	}
}

func (c *Console) followerTable(rows []FollowerRow) {
	t := newTable("Character", "Most Common Follower", "Count", "Percentage").alignRight(2, 3)
	for _, r := range rows {
		t.add(r.Char, r.Follower, strconv.Itoa(r.Count), pct(r.Percent))
	}
	c.table(t)
}

func (c *Console) followers(f Followers) {
	c.title("CHARACTER SEQUENCE ANALYSIS")
	c.heading("Most Common Character Followers (Overall):")
	c.followerTable(f.Global)

	c.heading("Most Common Followers by Position:")
	for i, rows := range f.Positions {
		c.printf("\n%s\n", c.st.heading.Render(fmt.Sprintf("Position %d:", i+1)))
		c.followerTable(rows)
	}

	if len(f.Trigrams) > 0 {
		c.heading("Most Common 3-Character Sequences:")
		c.rowTable("Trigram", f.Trigrams)
	}
}

func (c *Console) enhanced(e *Enhanced, valid int) {
	c.title("ENHANCED PATTERN ANALYSIS")
	if len(e.Runs) > 0 {
		c.heading("Repetitive Character Sequences:")
		c.rowTable("Sequence", e.Runs)
	}
	if len(e.Keyboard) > 0 {
		c.heading("Keyboard Pattern Sequences:")
		c.rowTable("Sequence", e.Keyboard)
	}

	c.heading("Date Pattern Detection:")
	c.printf("Passwords containing date patterns: %d (%s)\n", e.DatePasswords, pct(e.DatePercent))
	c.heading("Numeric Sequence Detection:")
	c.printf("Passwords containing numeric sequences: %d (%s)\n", e.NumericSequences, pct(e.NumericPercent))
	c.heading("Leetspeak Usage:")
	c.printf("Passwords using leetspeak: %d (%s)\n", e.Leetspeak, pct(e.LeetspeakPercent))

	if len(e.Capitalization) > 0 {
		c.heading("Capitalization Patterns:")
		c.rowTable("Pattern", e.Capitalization)
	}
	if len(e.NumberSuffixes) > 0 {
		c.heading("Number Suffix Patterns:")
		c.rowTable("Suffix", e.NumberSuffixes)
	}
	if len(e.SpecialPositions) > 0 {
		c.heading("Special Character Positions:")
		c.rowTable("Position", e.SpecialPositions)
	}
	if e.DictionarySize > 0 && len(e.Words) > 0 {
		c.heading("Common Dictionary Words in Passwords:")
		c.printf("Passwords containing dictionary words: %d (%s)\n", e.WordsDetected, pct(e.WordsPercent))
		c.rowTable("Word", e.Words)
		if len(e.Boundaries) > 0 {
			c.heading("Word Boundaries Analysis:")
			c.printf("%s\n", c.st.muted.Render("Characters commonly found before or after dictionary words:"))
			t := newTable("Position", "Character", "Count").alignRight(2)
			for _, b := range e.Boundaries {
				t.add(b.Side, b.Char, strconv.Itoa(b.Count))
			}
			c.table(t)
		}
	}
	if valid == 0 {
		c.printf("%s\n", c.st.muted.Render("No valid passwords; all rates are zero."))
	}
}

func (c *Console) classic(rows []ClassicRow) {
	c.title("CLASSIC TYPE ANALYSIS")
	headers := append([]string{"Position"}, ClassicCategories...)
	headers = append(headers, "Most Common", "Least Common", "Least Used Letter", "Least Used Number", "Least Used Special")
	t := newTable(headers...).alignRight(0, 1, 2, 3, 4)
	for _, r := range rows {
		cells := []string{strconv.Itoa(r.Position)}
		for i, p := range r.Percents {
			cell := pct(p)
			if r.Highest[i] {
				cell = c.st.highlight.Render(cell)
			}
			cells = append(cells, cell)
		}
		cells = append(cells,
			strings.Join(r.MostCommon, " "),
			strings.Join(r.LeastCommon, " "),
			strings.Join(r.LeastLetters, " "),
			strings.Join(r.LeastNumbers, " "),
			strings.Join(r.LeastSpecial, " "),
		)
		t.add(cells...)
	}
	c.table(t)
}

// Histogram writes a bar chart of the length distribution.
func (c *Console) Histogram(lengths []Row) error {
	if len(lengths) == 0 {
		return nil
	}
	c.heading("Length Distribution:")
	labelWidth, maxCount := 0, 0
	for _, r := range lengths {
		labelWidth = max(labelWidth, displayWidth(r.Key))
		maxCount = max(maxCount, r.Count)
	}
	barWidth := max(c.width-labelWidth-22, minHistogramWidth)
	for _, r := range lengths {
		n := 0
		if maxCount > 0 {
			n = r.Count * barWidth / maxCount
		}
		if n == 0 && r.Count > 0 {
			n = 1
		}
		bar := c.st.good.Render(strings.Repeat("█", n))
		c.printf("%s │ %s %d (%s)\n", padCell(r.Key, labelWidth, true), bar, r.Count, pct(r.Percent))
	}
	return c.err
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func terminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
