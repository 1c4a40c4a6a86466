package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter writes a report as GitHub-flavored Markdown.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write renders every section of r.
func (w *MarkdownWriter) Write(r Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, r)
	w.writeSummary(md, r.Summary)
	w.writeCharacters(md, r.Characters)
	w.writePositions(md, r.Positions)
	w.writeFollowers(md, r.Followers)
	if r.Enhanced != nil {
		w.writeEnhanced(md, r.Enhanced)
	}
	w.writeClassic(md, r.Classic)
	md.HorizontalRule()
	md.PlainTextf("*Generated by passlab on %s*", r.Meta.GeneratedAt.Format("2006-01-02 15:04:05"))

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, r Report) {
	s := r.Summary
	md.H1("Password Analysis Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Field", "Value"},
		Rows: [][]string{
			{"Input", escapeCell(r.Meta.Input)},
			{"Total", strconv.Itoa(s.Total)},
			{"Valid", strconv.Itoa(s.Valid)},
			{"Filtered", strconv.Itoa(s.Filtered)},
			{"Length bounds", fmt.Sprintf("%d-%d", r.Meta.Options.MinLength, r.Meta.Options.MaxLength)},
			{"Enhanced", strconv.FormatBool(r.Meta.Options.Enhanced)},
		},
	})
	md.PlainText("")
	if s.Valid == 0 {
		md.Warningf("No password passed the filters (%d filtered).", s.Filtered)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, s Summary) {
	md.H2("Summary")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Average length: %.2f characters", s.MeanLength),
		fmt.Sprintf("Length range: %d-%d characters", s.MinLength, s.MaxLength),
		fmt.Sprintf("Average entropy: %.2f bits", s.MeanEntropy),
		fmt.Sprintf("Entropy range: %d-%d bits", s.MinEntropy, s.MaxEntropy),
	)
	md.PlainText("")

	md.H3("Most Common Lengths")
	md.PlainText("")
	rowTable(md, "Length", s.Lengths)

	md.H3("Most Common Patterns")
	md.PlainText("")
	rowTable(md, "Pattern", s.Patterns)

	md.H3("Complexity")
	md.PlainText("")
	rows := make([][]string, len(s.Complexity))
	for i, c := range s.Complexity {
		rows[i] = []string{strconv.Itoa(c.Level), c.Description, strconv.Itoa(c.Count), pct(c.Percent)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Level", "Description", "Count", "Percentage"},
		Rows:   rows,
	})
	md.PlainText("")
	w.writeComplexityChart(md, s.Complexity)
}

func (w *MarkdownWriter) writeComplexityChart(md *markdown.Markdown, levels []ComplexityRow) {
	total := 0
	for _, c := range levels {
		total += c.Count
	}
	if total == 0 {
		return
	}
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Complexity Levels"),
		piechart.WithShowData(true),
	)
	for _, c := range levels {
		if c.Count == 0 {
			continue
		}
		chart.LabelAndIntValue(fmt.Sprintf("Level %d", c.Level), uint64(c.Count))
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeCharacters(md *markdown.Markdown, c Characters) {
	md.H2("Characters")
	md.PlainText("")
	if c.TotalChars == 0 {
		md.Note("No characters analyzed.")
		md.PlainText("")
		return
	}
	rowTable(md, "Character", c.Top)
	md.H3("Categories")
	md.PlainText("")
	rowTable(md, "Category", c.Categories)
}

func (w *MarkdownWriter) writePositions(md *markdown.Markdown, positions []PositionRow) {
	md.H2("Positions")
	md.PlainText("")
	rows := make([][]string, len(positions))
	for i, p := range positions {
		top := make([]string, len(p.Top))
		for j, r := range p.Top {
			top[j] = escapeCell(r.Key)
		}
		rows[i] = []string{
			strconv.Itoa(p.Position),
			pct(p.Lower), pct(p.Upper), pct(p.Digit), pct(p.Special),
			p.Dominant,
			strings.Join(top, " "),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Position", "Lowercase", "Uppercase", "Digit", "Special", "Most Common Type", "Top Characters"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFollowers(md *markdown.Markdown, f Followers) {
	md.H2("Character Sequences")
	md.PlainText("")
	followerTable(md, f.Global)
	for i, rows := range f.Positions {
		md.H3(fmt.Sprintf("Followers at Position %d", i+1))
		md.PlainText("")
		followerTable(md, rows)
	}
	if len(f.Trigrams) > 0 {
		md.H3("Trigrams")
		md.PlainText("")
		rowTable(md, "Trigram", f.Trigrams)
	}
}

func (w *MarkdownWriter) writeEnhanced(md *markdown.Markdown, e *Enhanced) {
	md.H2("Enhanced Pattern Analysis")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Passwords containing date patterns: %d (%s)", e.DatePasswords, pct(e.DatePercent)),
		fmt.Sprintf("Passwords containing numeric sequences: %d (%s)", e.NumericSequences, pct(e.NumericPercent)),
		fmt.Sprintf("Passwords using leetspeak: %d (%s)", e.Leetspeak, pct(e.LeetspeakPercent)),
	)
	md.PlainText("")

	sections := []struct {
		title string
		key   string
		rows  []Row
	}{
		{"Repetitive Sequences", "Sequence", e.Runs},
		{"Keyboard Sequences", "Sequence", e.Keyboard},
		{"Capitalization", "Pattern", e.Capitalization},
		{"Number Suffixes", "Suffix", e.NumberSuffixes},
		{"Special Character Positions", "Position", e.SpecialPositions},
		{"Dictionary Words", "Word", e.Words},
	}
	for _, s := range sections {
		if len(s.rows) == 0 {
			continue
		}
		md.H3(s.title)
		md.PlainText("")
		rowTable(md, s.key, s.rows)
	}
	if len(e.Boundaries) > 0 {
		rows := make([][]string, len(e.Boundaries))
		for i, b := range e.Boundaries {
			rows[i] = []string{b.Side, escapeCell(b.Char), strconv.Itoa(b.Count)}
		}
		md.H3("Word Boundaries")
		md.PlainText("")
		md.Table(markdown.TableSet{Header: []string{"Position", "Character", "Count"}, Rows: rows})
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeClassic(md *markdown.Markdown, rows []ClassicRow) {
	md.H2("Classic Type Analysis")
	md.PlainText("")
	header := append([]string{"Position"}, ClassicCategories...)
	header = append(header, "Most Common", "Least Common", "Least Used Letter", "Least Used Number", "Least Used Special")
	cells := make([][]string, len(rows))
	for i, r := range rows {
		row := []string{strconv.Itoa(r.Position)}
		for j, p := range r.Percents {
			cell := pct(p)
			if r.Highest[j] {
				cell = "**" + cell + "**"
			}
			row = append(row, cell)
		}
		cells[i] = append(row,
			escapeChars(r.MostCommon),
			escapeChars(r.LeastCommon),
			escapeChars(r.LeastLetters),
			escapeChars(r.LeastNumbers),
			escapeChars(r.LeastSpecial),
		)
	}
	md.Table(markdown.TableSet{Header: header, Rows: cells})
	md.PlainText("")
}

func escapeChars(chars []string) string {
	out := make([]string, len(chars))
	for i, c := range chars {
		out[i] = escapeCell(c)
	}
	return strings.Join(out, " ")
}

func rowTable(md *markdown.Markdown, key string, rows []Row) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{escapeCell(r.Key), strconv.Itoa(r.Count), pct(r.Percent)}
	}
	md.Table(markdown.TableSet{Header: []string{key, "Count", "Percentage"}, Rows: cells})
	md.PlainText("")
}

func followerTable(md *markdown.Markdown, rows []FollowerRow) {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = []string{escapeCell(r.Char), escapeCell(r.Follower), strconv.Itoa(r.Count), pct(r.Percent)}
	}
	md.Table(markdown.TableSet{Header: []string{"Character", "Most Common Follower", "Count", "Percentage"}, Rows: cells})
	md.PlainText("")
}

// escapeCell keeps password characters from breaking table syntax.
func escapeCell(s string) string {
	if s == "" {
		return s
	}
	r := strings.NewReplacer("|", `\|`, "`", "\\`", "*", `\*`, "_", `\_`)
	s = r.Replace(s)
	if strings.TrimSpace(s) == "" {
		return "`" + s + "`"
	}
	return s
}
