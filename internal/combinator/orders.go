package combinator

import (
	"iter"
	"slices"
)

// RotorOrders yields every ordered choice of len(slots) distinct rotors from
// catalog such that the i-th rotor is listed in slots[i]. Orders are
// produced in catalog permutation order.
func RotorOrders(catalog []string, slots [][]string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		used := make([]bool, len(catalog))
		cur := make([]string, 0, len(slots))
		var walk func() bool
		walk = func() bool {
			if len(cur) == len(slots) {
				return yield(slices.Clone(cur))
			}
			allowed := slots[len(cur)]
			for i, name := range catalog {
				if used[i] || !slices.Contains(allowed, name) {
					continue
				}
				used[i] = true
				cur = append(cur, name)
				ok := walk()
				cur = cur[:len(cur)-1]
				used[i] = false
				if !ok {
					return false
				}
			}
			return true
		}
		walk()
	}
}

// Product yields the Cartesian product of per-slot choices. Each slot is
// iterated in universe order, keeping only the values the slot lists; the
// last slot varies fastest.
func Product[T comparable](universe []T, slots [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		choices := make([][]T, len(slots))
		for i, slot := range slots {
			for _, v := range universe {
				if slices.Contains(slot, v) {
					choices[i] = append(choices[i], v)
				}
			}
			if len(choices[i]) == 0 {
				return
			}
		}
		idx := make([]int, len(slots))
		for {
			out := make([]T, len(slots))
			for i, j := range idx {
				out[i] = choices[i][j]
			}
			if !yield(out) {
				return
			}
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(choices[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// Reflectors yields the catalog reflectors listed in allowed, in catalog
// order.
func Reflectors(catalog, allowed []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range catalog {
			if slices.Contains(allowed, name) && !yield(name) {
				return
			}
		}
	}
}
