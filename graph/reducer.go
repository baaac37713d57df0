package graph

import (
	"golang.org/x/exp/constraints"

	"github.com/ScottSallinen/lollipop-gas/utils"
)

// A reducer merges an incoming value into an existing one.
// Must be commutative and associative: the engine merges contributions in an unspecified order.
// There is no identity element; the first contribution seeds the accumulator.
type Reducer[T any] interface {
	Merge(incoming T, existing *T)
}

type Sum[T constraints.Integer | constraints.Float] struct{}

func (Sum[T]) Merge(incoming T, existing *T) {
	*existing += incoming
}

type Min[T constraints.Ordered] struct{}

func (Min[T]) Merge(incoming T, existing *T) {
	if incoming < *existing {
		*existing = incoming
	}
}

type Max[T constraints.Ordered] struct{}

func (Max[T]) Merge(incoming T, existing *T) {
	if incoming > *existing {
		*existing = incoming
	}
}

// Multiplicity-aware union of multisets.
type Union[T comparable] struct{}

func (Union[T]) Merge(incoming utils.Multiset[T], existing *utils.Multiset[T]) {
	existing.Merge(incoming)
}

// Folds values with the reducer. Returns false if there were no values.
// The result is seeded from values[0], so it may share storage with it.
func Reduce[T any, R Reducer[T]](r R, values []T) (result T, ok bool) {
	if len(values) == 0 {
		return result, false
	}
	result = values[0]
	for i := 1; i < len(values); i++ {
		r.Merge(values[i], &result)
	}
	return result, true
}
