package combinator

import (
	"iter"
	"slices"
)

// combinations yields every k-subset of items in lexicographic index order.
func combinations[T any](items []T, k int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		if k < 0 || k > n {
			return
		}
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			out := make([]T, k)
			for i, j := range idx {
				out[i] = items[j]
			}
			if !yield(out) {
				return
			}
			i := k - 1
			for i >= 0 && idx[i] == i+n-k {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}

// permutations yields every ordering of items in lexicographic index order.
func permutations[T any](items []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		n := len(items)
		used := make([]bool, n)
		cur := make([]T, 0, n)
		var walk func() bool
		walk = func() bool {
			if len(cur) == n {
				return yield(slices.Clone(cur))
			}
			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				used[i] = true
				cur = append(cur, items[i])
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

// pairings yields every partition of items (even length) into unordered
// pairs. The first remaining item is paired with each later one in turn.
func pairings[T any](items []T) iter.Seq[[][2]T] {
	return func(yield func([][2]T) bool) {
		cur := make([][2]T, 0, len(items)/2)
		var walk func(rest []T) bool
		walk = func(rest []T) bool {
			if len(rest) == 0 {
				return yield(slices.Clone(cur))
			}
			for i := 1; i < len(rest); i++ {
				next := make([]T, 0, len(rest)-2)
				next = append(next, rest[1:i]...)
				next = append(next, rest[i+1:]...)
				cur = append(cur, [2]T{rest[0], rest[i]})
				ok := walk(next)
				cur = cur[:len(cur)-1]
				if !ok {
					return false
				}
			}
			return true
		}
		walk(items)
	}
}
