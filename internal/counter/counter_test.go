package counter

import "testing"

func TestCounterTopBreaksTiesByKey(t *testing.T) {
	c := New[string]()
	for _, k := range []string{"b", "a", "c", "b", "a", "d"} {
		c.Inc(k)
	}
	top := c.Top(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	want := []Entry[string]{{"a", 2}, {"b", 2}, {"c", 1}}
	for i := range want {
		if top[i] != want[i] {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want[i], top[i])
		}
	}
	if got := len(c.Top(0)); got != 4 {
		t.Fatalf("expected all 4 entries, got %d", got)
	}
}

func TestCounterBottomFilters(t *testing.T) {
	c := New[rune]()
	for _, r := range "aaabbc1122" {
		c.Inc(r)
	}
	letters := c.Bottom(2, func(r rune) bool { return r >= 'a' && r <= 'z' })
	if len(letters) != 2 || letters[0].Key != 'c' || letters[1].Key != 'b' {
		t.Fatalf("unexpected bottom letters: %+v", letters)
	}
}

func TestCounterReadsDoNotCreateEntries(t *testing.T) {
	c := New[string]()
	if c.Get("missing") != 0 {
		t.Fatalf("expected zero for missing key")
	}
	if c.Len() != 0 {
		t.Fatalf("read created an entry")
	}
	var nilCounter *Counter[string]
	if nilCounter.Get("x") != 0 || nilCounter.Total() != 0 || nilCounter.Top(5) != nil {
		t.Fatalf("nil counter should read as empty")
	}

	tbl := NewTable[rune, rune]()
	if tbl.Get('a', 'b') != 0 || tbl.Len() != 0 {
		t.Fatalf("table read created a row")
	}
}

func TestCounterMergeAndMinMax(t *testing.T) {
	a := New[int]()
	a.Add(3, 2)
	a.Add(8, 1)
	b := New[int]()
	b.Add(3, 1)
	b.Add(1, 4)
	b.Add(5, 0)
	a.Merge(b)
	if a.Get(3) != 3 || a.Get(1) != 4 || a.Total() != 8 || a.Len() != 3 {
		t.Fatalf("unexpected merge result: %v", a.Map())
	}
	if lo, ok := a.Min(); !ok || lo != 1 {
		t.Fatalf("expected min 1, got %d", lo)
	}
	if hi, ok := a.Max(); !ok || hi != 8 {
		t.Fatalf("expected max 8, got %d", hi)
	}
	if _, ok := New[int]().Min(); ok {
		t.Fatalf("expected no min on empty counter")
	}
}

func TestTableMergeAndClone(t *testing.T) {
	a := NewTable[rune, rune]()
	a.Inc('a', 'b')
	a.Inc('a', 'b')
	b := NewTable[rune, rune]()
	b.Inc('a', 'c')
	b.Inc('x', 'y')

	clone := a.Clone()
	a.Merge(b)
	if a.Get('a', 'b') != 2 || a.Get('a', 'c') != 1 || a.Total() != 4 {
		t.Fatalf("unexpected merged table")
	}
	if clone.Total() != 2 {
		t.Fatalf("clone was mutated by merge")
	}
	rows := a.Rows()
	if len(rows) != 2 || rows[0] != 'a' || rows[1] != 'x' {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
