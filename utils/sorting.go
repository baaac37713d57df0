package utils

import (
	"container/heap"
	"sort"

	"golang.org/x/exp/constraints"
)

// Index view over a slice: sorting or heaping moves indexes, never the values.
type indexed[T constraints.Ordered] struct {
	Index []int
	Input []T
}

func (s indexed[T]) Len() int      { return len(s.Index) }
func (s indexed[T]) Swap(i, j int) { s.Index[i], s.Index[j] = s.Index[j], s.Index[i] }

// Ties fall back to the smaller index, so orders are deterministic.
func (s indexed[T]) smaller(i, j int) bool {
	a, b := s.Input[s.Index[i]], s.Input[s.Index[j]]
	if a == b {
		return s.Index[i] > s.Index[j]
	}
	return a < b
}

func newIndexed[T constraints.Ordered](input []T, size int) indexed[T] {
	s := indexed[T]{Input: input, Index: make([]int, size)}
	for i := range s.Index {
		s.Index[i] = i
	}
	return s
}

type largestFirst[T constraints.Ordered] struct{ indexed[T] }

func (s largestFirst[T]) Less(i, j int) bool { return s.smaller(j, i) }

// Indexes of the input in sorted order, largest first. The input is not modified.
func SortGiveIndexesLargestFirst[T constraints.Ordered](input []T) []int {
	s := largestFirst[T]{newIndexed(input, len(input))}
	sort.Sort(s)
	return s.Index
}

// Min-heap of indexes, holding the smallest of the largest values seen so far.
type smallestHeap[T constraints.Ordered] struct{ indexed[T] }

func (h *smallestHeap[T]) Less(i, j int) bool { return h.smaller(i, j) }
func (h *smallestHeap[T]) Push(x any)         { h.Index = append(h.Index, x.(int)) }
func (h *smallestHeap[T]) Pop() any {
	last := len(h.Index) - 1
	idx := h.Index[last]
	h.Index = h.Index[:last]
	return idx
}

// Indexes of the n largest values, largest first. O(|array| log n); the input is not modified.
func TopN[T constraints.Ordered](array []T, n int) []int {
	n = Min(n, len(array))
	if n <= 0 {
		return nil
	}
	h := &smallestHeap[T]{newIndexed(array, n)}
	heap.Init(h)
	for i := n; i < len(array); i++ {
		if array[h.Index[0]] < array[i] {
			h.Index[0] = i
			heap.Fix(h, 0)
		}
	}
	top := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		top[i] = heap.Pop(h).(int)
	}
	return top
}
