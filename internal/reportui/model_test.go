package reportui

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/passlab/internal/engine"
	"github.com/verte-zerg/passlab/internal/model"
	"github.com/verte-zerg/passlab/internal/report"
)

func buildReport(enhanced bool, passwords ...string) report.Report {
	opts := model.DefaultOptions()
	opts.Enhanced = enhanced
	acc := engine.New(opts)
	for _, pw := range passwords {
		acc.Add(pw)
	}
	meta := report.Meta{Input: "corpus.txt", Options: opts}
	return report.Build(acc.Snapshot(), meta, report.DefaultLimits())
}

func TestTabsFollowEnhancedMode(t *testing.T) {
	plain := NewModel(buildReport(false, "abc"))
	if want := []string{"Summary", "Characters", "Positions", "Followers", "Classic"}; !reflect.DeepEqual(plain.tabs, want) {
		t.Fatalf("expected tabs %v, got %v", want, plain.tabs)
	}
	enhanced := NewModel(buildReport(true, "abc"))
	if len(enhanced.tabs) != 6 || enhanced.tabs[4] != "Enhanced" {
		t.Fatalf("expected enhanced tab, got %v", enhanced.tabs)
	}
}

func TestViewRendersActiveTab(t *testing.T) {
	m := NewModel(buildReport(true, "Password1", "qwerty"))
	if m.View() != "" {
		t.Fatalf("expected empty view before the first resize")
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()
	if !containsAll(view, []string{"Summary", "Input: corpus.txt", "PASSWORD ANALYSIS SUMMARY", "Quit: q"}) {
		t.Fatalf("summary view missing segments:\n%s", view)
	}
	if got := len(strings.Split(view, "\n")); got != 40 {
		t.Fatalf("expected 40 lines, got %d", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeID() != tabCharTable {
		t.Fatalf("expected character table, got tab %d", m.activeID())
	}
	if !strings.Contains(m.View(), "Percentage") {
		t.Fatalf("expected table header:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeID() != tabClassic {
		t.Fatalf("expected wrap to classic tab, got %d", m.activeID())
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(buildReport(false, "abc"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	if out != "ab  \ncd  " {
		t.Fatalf("unexpected fit: %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
