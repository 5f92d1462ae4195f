package combinator

import (
	"slices"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/machine"
)

func letters() []byte {
	out := make([]byte, machine.AlphabetSize)
	for i := range out {
		out[i] = machine.Letter(i)
	}
	return out
}

func TestCombinations_Order(t *testing.T) {
	var got []string
	for c := range combinations([]byte("ABCD"), 2) {
		got = append(got, string(c))
	}
	assert.Equal(t, []string{"AB", "AC", "AD", "BC", "BD", "CD"}, got)

	n := 0
	for c := range combinations([]int{1, 2}, 0) {
		assert.Empty(t, c)
		n++
	}
	assert.Equal(t, 1, n, "one empty combination")

	for range combinations([]int{1, 2}, 3) {
		t.Fatal("no 3-subsets of a 2-set")
	}
}

func TestPermutations_Order(t *testing.T) {
	var got []string
	for p := range permutations([]byte("ABC")) {
		got = append(got, string(p))
	}
	assert.Equal(t, []string{"ABC", "ACB", "BAC", "BCA", "CAB", "CBA"}, got)
}

func TestPairings(t *testing.T) {
	var got [][][2]int
	for p := range pairings([]int{0, 1, 2, 3}) {
		got = append(got, p)
	}
	assert.Equal(t, [][][2]int{
		{{0, 1}, {2, 3}},
		{{0, 2}, {1, 3}},
		{{0, 3}, {1, 2}},
	}, got)

	n := 0
	for range pairings([]int{0, 1, 2, 3, 4, 5}) {
		n++
	}
	assert.Equal(t, 15, n, "5!! pairings of six items")
}

func TestRotorOrders(t *testing.T) {
	catalog := machine.RotorNames()
	open := [][]string{catalog, catalog, catalog}

	n := 0
	for order := range RotorOrders(catalog, open) {
		assert.Len(t, order, 3)
		assert.NotEqual(t, order[0], order[1])
		assert.NotEqual(t, order[1], order[2])
		assert.NotEqual(t, order[0], order[2])
		n++
	}
	assert.Equal(t, 7*6*5, n)
	assert.Equal(t, int64(210), RotorOrderCount(catalog, open).Int64())

	var got [][]string
	for order := range RotorOrders(catalog, [][]string{{"II", "Gamma"}, {"II", "IV"}, {"III", "V"}}) {
		got = append(got, order)
	}
	assert.Equal(t, [][]string{
		{"II", "IV", "III"},
		{"II", "IV", "V"},
		{"Gamma", "II", "III"},
		{"Gamma", "II", "V"},
		{"Gamma", "IV", "III"},
		{"Gamma", "IV", "V"},
	}, got)
}

func TestProduct(t *testing.T) {
	var got []string
	for tuple := range Product(letters(), [][]byte{[]byte("ZA"), []byte("B"), []byte("DC")}) {
		got = append(got, string(tuple))
	}
	assert.Equal(t, []string{"ABC", "ABD", "ZBC", "ZBD"}, got, "slots iterate in alphabet order")
	assert.Equal(t, int64(4), ProductCount(letters(), [][]byte{[]byte("ZA"), []byte("B"), []byte("DC")}).Int64())

	for range Product(letters(), [][]byte{[]byte("A"), {}}) {
		t.Fatal("an empty slot empties the product")
	}

	rings := []int{1, 2, 3}
	assert.Equal(t, int64(6), ProductCount(rings, [][]int{{1, 2}, {3, 9}, {1, 2, 3}}).Int64())
}

func TestReflectors(t *testing.T) {
	var got []string
	for name := range Reflectors(machine.ReflectorNames(), []string{"C", "A"}) {
		got = append(got, name)
	}
	assert.Equal(t, []string{"A", "C"}, got)
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		token string
		kind  SlotKind
	}{
		{"AB", Fixed},
		{"A?", HalfKnown},
		{"?A", HalfKnown},
		{"??", Unknown},
	}
	for _, tt := range tests {
		s, err := ParseSlot(tt.token)
		require.NoError(t, err, tt.token)
		assert.Equal(t, tt.kind, s.Kind, tt.token)
		assert.Equal(t, tt.token, s.String())
	}

	for _, bad := range []string{"", "A", "ABC", "AA", "a?", "A1"} {
		_, err := ParseSlot(bad)
		assert.ErrorIs(t, err, ErrInvalidSlot, bad)
	}
}

func TestParseSlots_Validation(t *testing.T) {
	_, err := ParseSlots([]string{"AB", "B?"})
	assert.ErrorIs(t, err, ErrLetterReused)

	_, err = ParseSlots(strings.Fields("?? ?? ?? ?? ?? ?? ?? ?? ?? ?? ??"))
	assert.ErrorIs(t, err, ErrTooManySlots)

	slots, err := ParseSlots([]string{"KI", "NX", "FL"})
	require.NoError(t, err)
	assert.Len(t, slots, 3)
}

func canonicalBoard(pairs []machine.Pair) string {
	tokens := make([]string, len(pairs))
	for i, p := range pairs {
		tokens[i] = p.Sorted().String()
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func TestPlugboardAssignments_MixedSlots(t *testing.T) {
	slots, err := ParseSlots([]string{"AB", "C?", "??"})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for board := range PlugboardAssignments(slots) {
		require.Len(t, board, 3)
		assert.Equal(t, machine.Pair{A: 'A', B: 'B'}, board[0])
		assert.Equal(t, byte('C'), board[1].A)

		used := make(map[byte]bool)
		for _, p := range board {
			used[p.A] = true
			used[p.B] = true
		}
		assert.Len(t, used, 6, "board %v reuses a letter", board)

		key := canonicalBoard(board)
		assert.False(t, seen[key], "board %s yielded twice", key)
		seen[key] = true
	}

	// 23 free letters: one for C?, then a pair from the remaining 22.
	assert.Len(t, seen, 23*22*21/2)
	assert.Equal(t, int64(len(seen)), PlugboardCount(slots).Int64())
}

func TestPlugboardAssignments_Order(t *testing.T) {
	slots, err := ParseSlots([]string{"?A", "B?"})
	require.NoError(t, err)

	var got []string
	for board := range PlugboardAssignments(slots) {
		got = append(got, strings.Join(machine.PairStrings(board), " "))
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{"CA BD", "DA BC", "CA BE"}, got)
	assert.Equal(t, int64(24*23), PlugboardCount(slots).Int64())
}

func TestPlugboardAssignments_FullyKnown(t *testing.T) {
	slots, err := ParseSlots([]string{"KI", "NX", "FL"})
	require.NoError(t, err)

	var boards [][]machine.Pair
	for board := range PlugboardAssignments(slots) {
		boards = append(boards, board)
	}
	require.Len(t, boards, 1)
	assert.Equal(t, []string{"KI", "NX", "FL"}, machine.PairStrings(boards[0]))
	assert.Equal(t, int64(1), PlugboardCount(slots).Int64())

	n := 0
	for board := range PlugboardAssignments(nil) {
		assert.Empty(t, board)
		n++
	}
	assert.Equal(t, 1, n, "no slots is the empty board")
}

func TestPlugboardAssignments_WildcardsOnly(t *testing.T) {
	slots, err := ParseSlots([]string{"??", "??"})
	require.NoError(t, err)

	n := 0
	for range PlugboardAssignments(slots) {
		n++
	}
	// 26! / (22! * 2^2 * 2!)
	assert.Equal(t, 44850, n)
	assert.Equal(t, int64(n), PlugboardCount(slots).Int64())
}

func standardB(t *testing.T) Table {
	t.Helper()
	std, err := machine.StandardReflectorWiring("B")
	require.NoError(t, err)
	return std
}

func TestReflectorWirings(t *testing.T) {
	std := standardB(t)

	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{2, 1 + 78},
		{4, 1 + 2145},
	}
	for _, tt := range tests {
		seq, err := ReflectorWirings(std, tt.n)
		require.NoError(t, err)

		seen := make(map[Table]bool)
		first := true
		for table := range seq {
			if first {
				assert.Equal(t, std, table, "standard wiring comes first")
				first = false
			}
			require.NoError(t, machine.ValidateReflectorWiring(table))
			assert.False(t, seen[table], "table yielded twice")
			seen[table] = true
		}
		assert.Len(t, seen, tt.want, "n=%d", tt.n)
		assert.Equal(t, int64(tt.want), ReflectorWiringCount(tt.n).Int64(), "n=%d", tt.n)
	}
}

func TestReflectorWirings_ContainsKnownRewiring(t *testing.T) {
	seq, err := ReflectorWirings(standardB(t), 4)
	require.NoError(t, err)

	r, err := machine.NewReflector("B")
	require.NoError(t, err)

	var found bool
	for table := range seq {
		require.NoError(t, r.SwapWiring(table))
		if slices.Equal(machine.PairStrings(r.DiffFromStandard()), []string{"AP", "BQ", "ER", "IY"}) {
			found = true
			break
		}
	}
	assert.True(t, found)
}

func TestReflectorWirings_InvalidCount(t *testing.T) {
	std := standardB(t)
	for _, n := range []int{-2, 1, 3, 14} {
		_, err := ReflectorWirings(std, n)
		assert.ErrorIs(t, err, ErrSwapCount, "n=%d", n)
	}

	var broken Table
	_, err := ReflectorWirings(broken, 2)
	assert.True(t, machine.IsInvalidConfig(err))
}

func TestCounts(t *testing.T) {
	assert.Equal(t, int64(15), DoubleFactorial(5).Int64())
	assert.Equal(t, int64(48), DoubleFactorial(6).Int64())
	assert.Equal(t, int64(1), DoubleFactorial(-1).Int64())
	assert.Equal(t, int64(2145), ReflectorModificationCount(13, 4).Int64())
	assert.Equal(t, int64(0), ReflectorModificationCount(3, 4).Int64())
}
