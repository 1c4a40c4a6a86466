// Package reportui provides the Bubble Tea report browser.
package reportui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passlab/internal/model"
	"github.com/verte-zerg/passlab/internal/report"
)

const (
	tabSummary = iota
	tabCharTable
	tabPositions
	tabFollowers
	tabEnhanced
	tabClassic
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report browser.
type Model struct {
	report report.Report

	tabs      []string
	tabIDs    []int
	activeTab int
	viewports map[int]*viewport.Model
	charTable table.Model

	width  int
	height int
}

// NewModel constructs a browser over r. The enhanced tab is present only
// when r carries enhanced views.
func NewModel(r report.Report) *Model {
	m := &Model{report: r, viewports: map[int]*viewport.Model{}}
	m.addTab(tabSummary, "Summary")
	m.addTab(tabCharTable, "Characters")
	m.addTab(tabPositions, "Positions")
	m.addTab(tabFollowers, "Followers")
	if r.Enhanced != nil {
		m.addTab(tabEnhanced, "Enhanced")
	}
	m.addTab(tabClassic, "Classic")
	m.charTable = buildCharTable(r.Characters)
	m.renderTabContents()
	return m
}

// Run opens the browser on the alternate screen and blocks until it quits.
func Run(r report.Report) error {
	program := tea.NewProgram(NewModel(r), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m *Model) addTab(id int, title string) {
	m.tabs = append(m.tabs, title)
	m.tabIDs = append(m.tabIDs, id)
	if id != tabCharTable {
		vp := viewport.New(0, 0)
		m.viewports[id] = &vp
	}
}

func (m *Model) activeID() int {
	return m.tabIDs[m.activeTab]
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if m.activeID() == tabCharTable {
				m.charTable.GotoTop()
			} else {
				m.viewports[m.activeID()].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeID() == tabCharTable {
				m.charTable.GotoBottom()
			} else {
				m.viewports[m.activeID()].GotoBottom()
			}
			return m, nil
		default:
			if m.activeID() == tabCharTable {
				var cmd tea.Cmd
				m.charTable, cmd = m.charTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeID()]
			var cmd tea.Cmd
			*vp, cmd = vp.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderHelp(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := max(lipgloss.Height(activeNavStyle.Render("X")), 1)
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = max(m.height-headerHeight-footerHeight, 1)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for _, vp := range m.viewports {
		vp.Width = m.width
		vp.Height = bodyHeight
	}
	m.charTable.SetWidth(m.width)
	m.charTable.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeID() == tabCharTable {
		m.charTable.Focus()
	} else {
		m.charTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	opts := m.report.Meta.Options
	line := fmt.Sprintf("Input: %s  length=%d-%d  ascii-only=%t  enhanced=%t",
		m.report.Meta.Input, opts.MinLength, opts.MaxLength, opts.ASCIIOnly, opts.Enhanced)
	if opts.Pattern != "" {
		line += "  pattern=" + opts.Pattern
	}
	return padLines(m.renderTabs(), m.width) + "\n" + headerStyle.Render(truncateLine(line, m.width))
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Top/Bottom: g/G  Quit: q")
}

func (m *Model) renderBody() string {
	if m.activeID() == tabCharTable {
		if m.report.Characters.TotalChars == 0 {
			return "No characters analyzed."
		}
		return tableMutedStyle.Render(m.charTable.View())
	}
	return m.viewports[m.activeID()].View()
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	for id, vp := range m.viewports {
		vp.SetContent(m.renderTab(id, width))
	}
}

func (m *Model) renderTab(id, width int) string {
	var sections model.Sections
	prefix := ""
	switch id {
	case tabSummary:
		prefix = renderSummaryCards(m.report.Summary, width) + "\n"
		sections.Summary = true
	case tabPositions:
		sections.Position = true
	case tabFollowers:
		sections.Followers = true
	case tabEnhanced:
		sections.Enhanced = true
	case tabClassic:
		sections.Classic = true
	}
	var buf bytes.Buffer
	console := report.NewConsole(&buf)
	if err := console.Render(m.report, sections); err != nil {
		return fmt.Sprintf("Failed to render report: %v", err)
	}
	if id == tabSummary {
		if err := console.Histogram(m.report.Summary.LengthDist); err != nil {
			return fmt.Sprintf("Failed to render histogram: %v", err)
		}
	}
	return strings.TrimRight(prefix+buf.String(), "\n")
}

func renderSummaryCards(s report.Summary, width int) string {
	cards := []string{
		metricCard("Total", strconv.Itoa(s.Total)),
		metricCard("Valid", strconv.Itoa(s.Valid)),
		metricCard("Filtered", strconv.Itoa(s.Filtered)),
		metricCard("Avg Length", fmt.Sprintf("%.2f", s.MeanLength)),
		metricCard("Avg Entropy", fmt.Sprintf("%.2f bits", s.MeanEntropy)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func buildCharTable(c report.Characters) table.Model {
	columns := []table.Column{
		{Title: "Char", Width: 6},
		{Title: "Count", Width: 10},
		{Title: "Percentage", Width: 10},
	}
	rows := make([]table.Row, 0, len(c.Top))
	for _, r := range c.Top {
		label := r.Key
		if label == " " {
			label = "<space>"
		}
		rows = append(rows, table.Row{label, strconv.Itoa(r.Count), fmt.Sprintf("%.2f%%", r.Percent)})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(1),
	)
	t.SetStyles(charTableStyles())
	return t
}

func charTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
