package combinator

import (
	"fmt"
	"iter"

	"github.com/roach88/enigma/internal/machine"
)

// Table is a reflector wiring table indexed by contact.
type Table = [machine.AlphabetSize]int

// ReflectorWirings yields standard first and then every table obtained by
// choosing n of its wire pairs and exchanging partners among them, n/2
// exchanges at a time. Exchanging partners of pairs {a, a'} and {b, b'}
// gives {a, b'} and {b, a'}, which keeps the table an involution without
// fixed points. n == 0 yields only standard.
//
// Wire pairs are identified by their lower contact and chosen in
// alphabetical order.
func ReflectorWirings(standard Table, n int) (iter.Seq[Table], error) {
	if err := machine.ValidateReflectorWiring(standard); err != nil {
		return nil, err
	}
	wires := wirePairs(standard)
	if n < 0 || n%2 != 0 || n > len(wires) {
		return nil, fmt.Errorf("%w: %d (must be even, 0-%d)", ErrSwapCount, n, len(wires)-len(wires)%2)
	}
	return func(yield func(Table) bool) {
		if !yield(standard) || n == 0 {
			return
		}
		for chosen := range combinations(wires, n) {
			for exchanges := range pairings(chosen) {
				t := standard
				for _, x := range exchanges {
					a, b := x[0], x[1]
					pa, pb := standard[a], standard[b]
					t[a], t[pb] = pb, a
					t[b], t[pa] = pa, b
				}
				if !yield(t) {
					return
				}
			}
		}
	}, nil
}

// wirePairs returns the lower contact of every pair in table.
func wirePairs(table Table) []int {
	var out []int
	for i, j := range table {
		if i < j {
			out = append(out, i)
		}
	}
	return out
}
