package ds

import (
	"github.com/samber/lo"
)

// Repeat returns n copies of initial; a negative n gives an empty slice.
func Repeat[T any](n int, initial T) []T {
	return lo.Times(lo.Max([]int{n, 0}), func(int) T {
		return initial
	})
}
