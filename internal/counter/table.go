package counter

import "cmp"

// Table is a mapping from a row key to a Counter of column keys, used for
// transition matrices such as character followers.
type Table[R, C cmp.Ordered] struct {
	rows map[R]*Counter[C]
}

// NewTable returns an empty Table.
func NewTable[R, C cmp.Ordered]() *Table[R, C] {
	return &Table[R, C]{rows: map[R]*Counter[C]{}}
}

// Inc adds one to the cell (row, col).
func (t *Table[R, C]) Inc(row R, col C) {
	t.Add(row, col, 1)
}

// Add adds n to the cell (row, col).
func (t *Table[R, C]) Add(row R, col C, n int) {
	if n <= 0 {
		return
	}
	if t.rows == nil {
		t.rows = map[R]*Counter[C]{}
	}
	c, ok := t.rows[row]
	if !ok {
		c = New[C]()
		t.rows[row] = c
	}
	c.Add(col, n)
}

// Get returns the count of (row, col), or 0.
func (t *Table[R, C]) Get(row R, col C) int {
	return t.Row(row).Get(col)
}

// Row returns the counter for row. A missing row yields nil, which every
// Counter read method treats as empty.
func (t *Table[R, C]) Row(row R) *Counter[C] {
	if t == nil {
		return nil
	}
	return t.rows[row]
}

// Rows returns the row keys in ascending order.
func (t *Table[R, C]) Rows() []R {
	if t == nil {
		return nil
	}
	keys := New[R]()
	for k := range t.rows {
		keys.Inc(k)
	}
	return keys.Keys()
}

// Len returns the number of rows.
func (t *Table[R, C]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Total returns the sum over every cell.
func (t *Table[R, C]) Total() int {
	if t == nil {
		return 0
	}
	total := 0
	for _, c := range t.rows {
		total += c.Total()
	}
	return total
}

// Merge adds every cell of other into t.
func (t *Table[R, C]) Merge(other *Table[R, C]) {
	if other == nil {
		return
	}
	for r, c := range other.rows {
		for col, n := range c.m {
			t.Add(r, col, n)
		}
	}
}

// Clone returns an independent copy.
func (t *Table[R, C]) Clone() *Table[R, C] {
	out := NewTable[R, C]()
	out.Merge(t)
	return out
}
