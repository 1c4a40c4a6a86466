// Package counter provides keyed occurrence counters with zero-default reads.
package counter

import (
	"cmp"
	"sort"
)

// Entry is a single key and its count.
type Entry[K cmp.Ordered] struct {
	Key   K
	Count int
}

// Counter counts occurrences per key. The zero value is ready to use and
// reads never create entries.
type Counter[K cmp.Ordered] struct {
	m     map[K]int
	total int
}

// New returns an empty Counter.
func New[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{m: map[K]int{}}
}

// Inc adds one to key.
func (c *Counter[K]) Inc(key K) {
	c.Add(key, 1)
}

// Add adds n to key. Non-positive n is ignored.
func (c *Counter[K]) Add(key K, n int) {
	if n <= 0 {
		return
	}
	if c.m == nil {
		c.m = map[K]int{}
	}
	c.m[key] += n
	c.total += n
}

// Get returns the count for key, or 0 when the key was never counted.
func (c *Counter[K]) Get(key K) int {
	if c == nil {
		return 0
	}
	return c.m[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.m)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	if c == nil {
		return 0
	}
	return c.total
}

// Keys returns all keys in ascending order.
func (c *Counter[K]) Keys() []K {
	if c == nil || len(c.m) == 0 {
		return nil
	}
	keys := make([]K, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Min returns the smallest key. ok is false for an empty counter.
func (c *Counter[K]) Min() (key K, ok bool) {
	keys := c.Keys()
	if len(keys) == 0 {
		return key, false
	}
	return keys[0], true
}

// Max returns the largest key. ok is false for an empty counter.
func (c *Counter[K]) Max() (key K, ok bool) {
	keys := c.Keys()
	if len(keys) == 0 {
		return key, false
	}
	return keys[len(keys)-1], true
}

// Top returns up to n entries ordered by count descending, ties by ascending
// key. n <= 0 returns every entry.
func (c *Counter[K]) Top(n int) []Entry[K] {
	entries := c.entries(nil)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Count > entries[j].Count
	})
	return limit(entries, n)
}

// Bottom returns up to n entries accepted by keep, ordered by count
// ascending, ties by ascending key. A nil keep accepts every key.
func (c *Counter[K]) Bottom(n int, keep func(K) bool) []Entry[K] {
	entries := c.entries(keep)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Key < entries[j].Key
		}
		return entries[i].Count < entries[j].Count
	})
	return limit(entries, n)
}

// Merge adds every count of other into c.
func (c *Counter[K]) Merge(other *Counter[K]) {
	if other == nil {
		return
	}
	for k, n := range other.m {
		c.Add(k, n)
	}
}

// Clone returns an independent copy.
func (c *Counter[K]) Clone() *Counter[K] {
	out := New[K]()
	out.Merge(c)
	return out
}

// Map returns a copy of the counts.
func (c *Counter[K]) Map() map[K]int {
	out := make(map[K]int, c.Len())
	if c == nil {
		return out
	}
	for k, n := range c.m {
		out[k] = n
	}
	return out
}

func (c *Counter[K]) entries(keep func(K) bool) []Entry[K] {
	if c == nil {
		return nil
	}
	entries := make([]Entry[K], 0, len(c.m))
	for k, n := range c.m {
		if keep != nil && !keep(k) {
			continue
		}
		entries = append(entries, Entry[K]{Key: k, Count: n})
	}
	return entries
}

func limit[K cmp.Ordered](entries []Entry[K], n int) []Entry[K] {
	if n > 0 && n < len(entries) {
		return entries[:n]
	}
	return entries
}
