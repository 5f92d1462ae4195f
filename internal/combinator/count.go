package combinator

import (
	"math/big"
	"slices"

	"github.com/roach88/enigma/internal/machine"
)

// ReflectorWires is the number of wire pairs in a reflector.
const ReflectorWires = machine.AlphabetSize / 2

// DoubleFactorial returns n!! and 1 for n <= 0.
func DoubleFactorial(n int) *big.Int {
	out := big.NewInt(1)
	for ; n > 1; n -= 2 {
		out.Mul(out, big.NewInt(int64(n)))
	}
	return out
}

// ReflectorModificationCount returns C(k, n) * (n-1)!!, the number of ways
// to pick n of k wire pairs and re-pair them.
func ReflectorModificationCount(k, n int) *big.Int {
	if n < 0 || n > k {
		return big.NewInt(0)
	}
	out := new(big.Int).Binomial(int64(k), int64(n))
	return out.Mul(out, DoubleFactorial(n-1))
}

// ReflectorWiringCount returns how many tables ReflectorWirings yields for
// n, counting the standard table.
func ReflectorWiringCount(n int) *big.Int {
	if n == 0 {
		return big.NewInt(1)
	}
	out := ReflectorModificationCount(ReflectorWires, n)
	return out.Add(out, big.NewInt(1))
}

// PlugboardCount returns how many assignments PlugboardAssignments yields:
// rem! / ((rem - h - 2u)! * 2^u * u!) for rem free letters, h half-known
// slots and u unknown slots.
func PlugboardCount(slots []Slot) *big.Int {
	known, h, u := 0, 0, 0
	for _, s := range slots {
		known += len(s.known())
		switch s.Kind {
		case HalfKnown:
			h++
		case Unknown:
			u++
		}
	}
	rem := machine.AlphabetSize - known
	left := rem - h - 2*u
	if left < 0 {
		return big.NewInt(0)
	}
	num := factorial(rem)
	den := factorial(left)
	den.Mul(den, new(big.Int).Lsh(big.NewInt(1), uint(u)))
	den.Mul(den, factorial(u))
	return num.Quo(num, den)
}

// ProductCount returns how many tuples Product yields.
func ProductCount[T comparable](universe []T, slots [][]T) *big.Int {
	out := big.NewInt(1)
	for _, slot := range slots {
		n := 0
		for _, v := range universe {
			if slices.Contains(slot, v) {
				n++
			}
		}
		out.Mul(out, big.NewInt(int64(n)))
	}
	return out
}

// RotorOrderCount returns how many orders RotorOrders yields.
func RotorOrderCount(catalog []string, slots [][]string) *big.Int {
	var n int64
	for range RotorOrders(catalog, slots) {
		n++
	}
	return big.NewInt(n)
}

func factorial(n int) *big.Int {
	return new(big.Int).MulRange(1, int64(n))
}
