package combinator

import (
	"iter"
	"slices"

	"github.com/roach88/enigma/internal/machine"
)

// PlugboardAssignments yields every complete set of leads consistent with
// slots. The result has one pair per slot, in slot order. Letters not fixed
// by any slot are drawn in alphabetical order:
//
//   - first the set of letters for the half-known slots (combinations),
//   - then disjoint pairs for the unknown slots (combinations of pairs,
//     assigned to unknown slots in order),
//   - then every ordering of the half-known set across the half-known slots.
//
// Slots are assumed valid; see ValidateSlots.
func PlugboardAssignments(slots []Slot) iter.Seq[[]machine.Pair] {
	return func(yield func([]machine.Pair) bool) {
		var used [machine.AlphabetSize]bool
		base := make([]machine.Pair, len(slots))
		var half, unknown []int
		for i, s := range slots {
			for _, c := range s.known() {
				used[c-'A'] = true
			}
			switch s.Kind {
			case Fixed:
				base[i] = s.Pair
			case HalfKnown:
				half = append(half, i)
			case Unknown:
				unknown = append(unknown, i)
			}
		}

		var free []byte
		for i, u := range used {
			if !u {
				free = append(free, machine.Letter(i))
			}
		}

		for halfSet := range combinations(free, len(half)) {
			rest := slices.DeleteFunc(slices.Clone(free), func(c byte) bool {
				return slices.Contains(halfSet, c)
			})
			for wild := range disjointPairs(rest, len(unknown)) {
				for perm := range permutations(halfSet) {
					out := slices.Clone(base)
					for k, idx := range unknown {
						out[idx] = wild[k]
					}
					for k, idx := range half {
						out[idx] = slots[idx].fill(perm[k])
					}
					if !yield(out) {
						return
					}
				}
			}
		}
	}
}

// disjointPairs yields every set of n pairwise-disjoint letter pairs drawn
// from letters, in the order of combinations over the lexicographic pair
// list.
func disjointPairs(letters []byte, n int) iter.Seq[[]machine.Pair] {
	return func(yield func([]machine.Pair) bool) {
		var all []machine.Pair
		for i := range letters {
			for j := i + 1; j < len(letters); j++ {
				all = append(all, machine.Pair{A: letters[i], B: letters[j]})
			}
		}
		var used [machine.AlphabetSize]bool
		cur := make([]machine.Pair, 0, n)
		var walk func(start int) bool
		walk = func(start int) bool {
			if len(cur) == n {
				return yield(slices.Clone(cur))
			}
			for k := start; k < len(all); k++ {
				p := all[k]
				a, b := p.A-'A', p.B-'A'
				if used[a] || used[b] {
					continue
				}
				used[a], used[b] = true, true
				cur = append(cur, p)
				ok := walk(k + 1)
				cur = cur[:len(cur)-1]
				used[a], used[b] = false, false
				if !ok {
					return false
				}
			}
			return true
		}
		walk(0)
	}
}
