package machine

// Index converts an uppercase letter to its contact index 0-25.
func Index(c byte) (int, bool) {
	if c < 'A' || c > 'Z' {
		return 0, false
	}
	return int(c - 'A'), true
}

// Letter converts a contact index 0-25 to its uppercase letter.
func Letter(i int) byte {
	return byte('A' + mod26(i))
}

func mod26(i int) int {
	i %= AlphabetSize
	if i < 0 {
		i += AlphabetSize
	}
	return i
}

// Pair is an unordered connection between two distinct letters, used for
// plugboard leads and reflector wiring deltas.
type Pair struct {
	A, B byte
}

// ParsePair parses a two-letter token such as "AB".
func ParsePair(s string) (Pair, error) {
	if len(s) != 2 {
		return Pair{}, newConfigError("pair", "pair %q must be exactly two letters", s)
	}
	if _, ok := Index(s[0]); !ok {
		return Pair{}, newConfigError("pair", "pair %q: %q is not a letter A-Z", s, s[0])
	}
	if _, ok := Index(s[1]); !ok {
		return Pair{}, newConfigError("pair", "pair %q: %q is not a letter A-Z", s, s[1])
	}
	if s[0] == s[1] {
		return Pair{}, newConfigError("pair", "pair %q connects a letter to itself", s)
	}
	return Pair{A: s[0], B: s[1]}, nil
}

// ParsePairs parses a list of two-letter tokens.
func ParsePairs(tokens []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(tokens))
	for _, tok := range tokens {
		p, err := ParsePair(tok)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// String returns the two-letter token form.
func (p Pair) String() string {
	return string([]byte{p.A, p.B})
}

// Sorted returns the pair with its letters in alphabetical order.
func (p Pair) Sorted() Pair {
	if p.B < p.A {
		return Pair{A: p.B, B: p.A}
	}
	return p
}

// PairStrings formats pairs as two-letter tokens.
func PairStrings(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}

func letterError(component string, c byte) *Error {
	if c >= 0x20 && c < 0x7f {
		return newContactError(component, "%q is not a letter A-Z", c)
	}
	return newContactError(component, "byte 0x%02x is not a letter A-Z", c)
}

