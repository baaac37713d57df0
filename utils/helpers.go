package utils

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/constraints"
)

// An imprecise float approximate comparison. "optional" variance with ... args strategy
func FloatEquals(a float64, b float64, inputVariance ...float64) bool {
	variance := 0.001
	if len(inputVariance) >= 1 {
		variance = inputVariance[0]
	}
	return math.Abs(a-b) < variance
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

func MaxSlice[T constraints.Ordered](slice []T) T {
	max := slice[0]
	for i := range slice {
		max = Max(max, slice[i])
	}
	return max
}

func Sum[T constraints.Integer | constraints.Float](slice []T) (sum T) {
	for i := range slice {
		sum += slice[i]
	}
	return sum
}

func Median[T constraints.Integer | constraints.Float](n []T) T {
	return Percentile(n, 50)
}

func Percentile[T constraints.Integer | constraints.Float](n []T, percentile int) T {
	if len(n) == 0 {
		log.Warn().Msg("WARNING: Percentile called on empty slice")
		return 0
	}
	if len(n) == 1 {
		return n[0]
	}
	copyN := make([]T, len(n))
	copy(copyN, n)
	sort.Slice(copyN, func(i, j int) bool { return copyN[i] < copyN[j] })

	idx := int(((float64(percentile) / 100.0) * float64(len(copyN))))
	if idx >= len(copyN) {
		idx = len(copyN) - 1
	}
	if len(copyN)%2 == 0 || idx == 0 {
		return copyN[idx]
	} else if copyN[idx-1] == copyN[idx] {
		return copyN[idx]
	}
	return (copyN[idx-1] + copyN[idx]) / 2
}

func Shuffle[T any](slice []T) {
	for i := range slice {
		j := rand.Intn(i + 1)
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// Compares two arrays: showcases average and L1 differences.
// Non-finite pairs that agree (both NaN, or the same infinity) count as zero difference.
// Returns: Average L1 diff, 50th percentile L1 diff, 95th percentile L1 diff, largest L1 diff.
func ResultCompare[T constraints.Float | constraints.Integer](a []T, b []T) (avgL1Diff float64, medianL1Diff float64, percentile95L1 float64, largestL1 float64) {
	if len(a) == 0 {
		return
	}
	listL1Diff := make([]float64, len(a))
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		l1delta := math.Abs(fb - fa)
		if (math.IsNaN(fa) && math.IsNaN(fb)) || (math.IsInf(fa, 0) && fa == fb) {
			l1delta = 0
		} else if math.IsNaN(l1delta) {
			l1delta = math.Inf(1)
		}
		listL1Diff[i] = l1delta
		avgL1Diff += l1delta
	}
	avgL1Diff = avgL1Diff / float64(len(a))

	sort.Float64s(listL1Diff)
	medianL1Diff = listL1Diff[len(listL1Diff)/2]
	percentile95L1 = listL1Diff[int(float64(len(listL1Diff)-1)*0.95)]
	largestL1 = listL1Diff[len(listL1Diff)-1]
	return avgL1Diff, medianL1Diff, percentile95L1, largestL1
}
