package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlugboard_Empty(t *testing.T) {
	p := NewPlugboard()
	for i := 0; i < AlphabetSize; i++ {
		assert.Equal(t, i, p.Encode(i))
	}
	assert.Equal(t, 0, p.Len())
}

func TestPlugboard_AddPair(t *testing.T) {
	p := NewPlugboard()
	require.NoError(t, p.AddPair('A', 'Z'))

	assert.Equal(t, 25, p.Encode(0))
	assert.Equal(t, 0, p.Encode(25))
	assert.Equal(t, 1, p.Encode(1))
	assert.Equal(t, []Pair{{'A', 'Z'}}, p.Pairs())
}

func TestPlugboard_AddPair_Rejects(t *testing.T) {
	p := NewPlugboard()
	require.NoError(t, p.AddPair('A', 'B'))

	tests := []struct {
		name string
		a, b byte
	}{
		{"reused first letter", 'A', 'C'},
		{"reused second letter", 'C', 'B'},
		{"self pair", 'C', 'C'},
		{"lowercase", 'c', 'D'},
		{"digit", 'C', '1'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.AddPair(tt.a, tt.b)
			assert.True(t, IsInvalidConfig(err))
			assert.Equal(t, []Pair{{'A', 'B'}}, p.Pairs())
		})
	}
}

func TestPlugboard_MaxPairs(t *testing.T) {
	p := NewPlugboard()
	for i := 0; i < MaxPlugboardPairs; i++ {
		require.NoError(t, p.AddPair(Letter(2*i), Letter(2*i+1)))
	}
	err := p.AddPair('Y', 'Z')
	assert.True(t, IsInvalidConfig(err))
	assert.Equal(t, MaxPlugboardPairs, p.Len())
	assert.Equal(t, int('Y'-'A'), p.Encode('Y'-'A'))
}

func TestPlugboard_SetPairs_Atomic(t *testing.T) {
	p := NewPlugboard()
	require.NoError(t, p.SetPairs([]Pair{{'K', 'I'}, {'N', 'X'}}))

	err := p.SetPairs([]Pair{{'F', 'L'}, {'L', 'Q'}})
	require.Error(t, err)
	assert.Equal(t, []Pair{{'K', 'I'}, {'N', 'X'}}, p.Pairs())
	assert.Equal(t, int('F'-'A'), p.Encode('F'-'A'), "F-L was not applied")

	require.NoError(t, p.SetPairs(nil))
	assert.Equal(t, 0, p.Len())
}

func TestParsePair(t *testing.T) {
	p, err := ParsePair("KI")
	require.NoError(t, err)
	assert.Equal(t, Pair{'K', 'I'}, p)
	assert.Equal(t, "KI", p.String())
	assert.Equal(t, Pair{'I', 'K'}, p.Sorted())

	for _, bad := range []string{"", "K", "KIX", "KK", "k1"} {
		_, err := ParsePair(bad)
		assert.True(t, IsInvalidConfig(err), bad)
	}
}

func TestPlugboard_Equal(t *testing.T) {
	a := NewPlugboard()
	require.NoError(t, a.SetPairs([]Pair{{'A', 'B'}, {'C', 'D'}}))
	b := NewPlugboard()
	require.NoError(t, b.SetPairs([]Pair{{'D', 'C'}, {'B', 'A'}}))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.AddPair('E', 'F'))
	assert.False(t, a.Equal(b))
}
