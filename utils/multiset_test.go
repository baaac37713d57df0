package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_MultisetVariants(t *testing.T) {
	var m Multiset[uint64]
	require.Equal(t, MultisetEmpty, m.Kind())
	require.Equal(t, 0, m.Len())
	require.Equal(t, uint32(0), m.Count(7))

	m.Merge(NewSingleton[uint64](7))
	require.Equal(t, MultisetSingle, m.Kind())
	require.Equal(t, uint32(1), m.Count(7))
	require.Equal(t, 1, m.Len())

	m.Merge(NewSingleton[uint64](7))
	require.Equal(t, MultisetMany, m.Kind())
	require.Equal(t, uint32(2), m.Count(7))
	require.Equal(t, 1, m.Len())

	m.Merge(NewSingleton[uint64](3))
	require.Equal(t, 2, m.Len())
	require.Equal(t, uint64(3), m.Total())
}

func Test_MultisetMergeDoesNotAlias(t *testing.T) {
	var other Multiset[int]
	other.Add(1, 2)
	other.Add(2, 1)

	var m Multiset[int]
	m.Merge(other)
	m.Add(1, 5)

	require.Equal(t, uint32(2), other.Count(1))
	require.Equal(t, uint32(7), m.Count(1))
	require.Equal(t, uint32(1), m.Count(2))
}

func Test_MultisetMergeOrderIndependent(t *testing.T) {
	parts := []Multiset[int]{
		NewSingleton(1),
		NewSingleton(2),
		NewSingleton(1),
		{},
		NewSingleton(3),
	}
	var many Multiset[int]
	many.Add(2, 3)
	parts = append(parts, many)

	expect := map[int]uint32{1: 2, 2: 4, 3: 1}
	for trial := 0; trial < 20; trial++ {
		Shuffle(parts)
		var m Multiset[int]
		for _, p := range parts {
			m.Merge(p)
		}
		got := map[int]uint32{}
		m.Range(func(x int, c uint32) { got[x] = c })
		require.Equal(t, expect, got)
	}
}
