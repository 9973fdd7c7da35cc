package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func MaxAbs(nums []float64) float64 {
	var max float64
	for _, v := range nums {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}
