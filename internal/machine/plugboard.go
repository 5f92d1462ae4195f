package machine

// MaxPlugboardPairs is the number of leads supplied with the machine.
const MaxPlugboardPairs = 10

// Plugboard swaps letter pairs on the way into and out of the rotors.
type Plugboard struct {
	mapping [AlphabetSize]int
	pairs   []Pair
}

// NewPlugboard returns a plugboard with no leads connected.
func NewPlugboard() *Plugboard {
	p := &Plugboard{}
	p.Clear()
	return p
}

// Clear disconnects every lead.
func (p *Plugboard) Clear() {
	for i := range p.mapping {
		p.mapping[i] = i
	}
	p.pairs = nil
}

// AddPair connects a and b. It fails if either letter is invalid or already
// connected, or if every lead is in use; the board is unchanged on failure.
func (p *Plugboard) AddPair(a, b byte) error {
	ia, ok := Index(a)
	if !ok {
		return newConfigError("plugboard", "%q is not a letter A-Z", a)
	}
	ib, ok := Index(b)
	if !ok {
		return newConfigError("plugboard", "%q is not a letter A-Z", b)
	}
	if ia == ib {
		return newConfigError("plugboard", "cannot connect %c to itself", a)
	}
	if len(p.pairs) >= MaxPlugboardPairs {
		return newConfigError("plugboard", "all %d leads are in use", MaxPlugboardPairs)
	}
	if p.mapping[ia] != ia {
		return newConfigError("plugboard", "letter %c is already connected", a)
	}
	if p.mapping[ib] != ib {
		return newConfigError("plugboard", "letter %c is already connected", b)
	}
	p.mapping[ia], p.mapping[ib] = ib, ia
	p.pairs = append(p.pairs, Pair{A: a, B: b})
	return nil
}

// SetPairs replaces every lead with pairs. Either all pairs are applied or
// the board keeps its previous state.
func (p *Plugboard) SetPairs(pairs []Pair) error {
	next := NewPlugboard()
	for _, pair := range pairs {
		if err := next.AddPair(pair.A, pair.B); err != nil {
			return err
		}
	}
	*p = *next
	return nil
}

// Pairs returns the connected leads in the order they were added.
func (p *Plugboard) Pairs() []Pair {
	out := make([]Pair, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Len returns the number of connected leads.
func (p *Plugboard) Len() int { return len(p.pairs) }

// Encode swaps a contact through the board.
func (p *Plugboard) Encode(in int) int { return p.mapping[in] }

// Equal reports whether both boards connect the same letters, regardless of
// the order or orientation in which the leads were added.
func (p *Plugboard) Equal(other *Plugboard) bool {
	return p.mapping == other.mapping
}
