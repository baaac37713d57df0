package utils

type MultisetKind uint8

const (
	MultisetEmpty MultisetKind = iota
	MultisetSingle
	MultisetMany
)

// A multiset (element -> multiplicity) with a small-size variant.
// Most gathered multisets start as a single element, so the map is only allocated once a second element arrives.
// The zero value is the empty multiset.
type Multiset[T comparable] struct {
	kind   MultisetKind
	single T
	many   map[T]uint32
}

func NewSingleton[T comparable](x T) Multiset[T] {
	return Multiset[T]{kind: MultisetSingle, single: x}
}

func (m *Multiset[T]) Kind() MultisetKind {
	return m.kind
}

// Adds count occurrences of x.
func (m *Multiset[T]) Add(x T, count uint32) {
	if count == 0 {
		return
	}
	switch m.kind {
	case MultisetEmpty:
		if count == 1 {
			m.kind = MultisetSingle
			m.single = x
			return
		}
		m.many = map[T]uint32{x: count}
		m.kind = MultisetMany
	case MultisetSingle:
		m.many = map[T]uint32{m.single: 1}
		m.many[x] += count
		m.kind = MultisetMany
		var zero T
		m.single = zero
	case MultisetMany:
		m.many[x] += count
	}
}

// Union with multiplicities summed. Never aliases the storage of other.
func (m *Multiset[T]) Merge(other Multiset[T]) {
	switch other.kind {
	case MultisetSingle:
		m.Add(other.single, 1)
	case MultisetMany:
		if m.kind == MultisetEmpty {
			m.many = make(map[T]uint32, len(other.many))
			m.kind = MultisetMany
		}
		for x, c := range other.many {
			m.Add(x, c)
		}
	}
}

// Multiplicity of x; zero if absent.
func (m *Multiset[T]) Count(x T) uint32 {
	switch m.kind {
	case MultisetSingle:
		if m.single == x {
			return 1
		}
	case MultisetMany:
		return m.many[x]
	}
	return 0
}

// Number of distinct elements.
func (m *Multiset[T]) Len() int {
	switch m.kind {
	case MultisetSingle:
		return 1
	case MultisetMany:
		return len(m.many)
	}
	return 0
}

// Sum of all multiplicities.
func (m *Multiset[T]) Total() (total uint64) {
	m.Range(func(_ T, c uint32) {
		total += uint64(c)
	})
	return total
}

// Visits each distinct element with its multiplicity. Order is unspecified.
func (m *Multiset[T]) Range(fn func(x T, count uint32)) {
	switch m.kind {
	case MultisetSingle:
		fn(m.single, 1)
	case MultisetMany:
		for x, c := range m.many {
			fn(x, c)
		}
	}
}
