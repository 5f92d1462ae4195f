package combinator

import (
	"fmt"

	"github.com/roach88/enigma/internal/machine"
)

// Wildcard marks an unknown letter in a plugboard slot token.
const Wildcard = '?'

// SlotKind distinguishes how much of a plugboard lead is known.
type SlotKind int

const (
	// Fixed slots know both letters ("AB").
	Fixed SlotKind = iota
	// HalfKnown slots know one letter ("A?" or "?A").
	HalfKnown
	// Unknown slots know neither letter ("??").
	Unknown
)

func (k SlotKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case HalfKnown:
		return "half-known"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("SlotKind(%d)", int(k))
	}
}

// Slot is one plugboard lead in a search constraint.
type Slot struct {
	Kind SlotKind

	// Pair holds the known letters. For HalfKnown slots the unknown side is
	// Wildcard; its position is kept so the filled pair reads the same way
	// the token did.
	Pair machine.Pair
}

// FixedSlot returns a fully known slot.
func FixedSlot(a, b byte) Slot { return Slot{Kind: Fixed, Pair: machine.Pair{A: a, B: b}} }

// HalfKnownSlot returns a slot with one known letter on the left.
func HalfKnownSlot(a byte) Slot { return Slot{Kind: HalfKnown, Pair: machine.Pair{A: a, B: Wildcard}} }

// UnknownSlot returns a fully wildcard slot.
func UnknownSlot() Slot { return Slot{Kind: Unknown, Pair: machine.Pair{A: Wildcard, B: Wildcard}} }

// ParseSlot parses "AB", "A?", "?A" or "??".
func ParseSlot(token string) (Slot, error) {
	if len(token) != 2 {
		return Slot{}, fmt.Errorf("%w: %q must be two characters", ErrInvalidSlot, token)
	}
	a, b := token[0], token[1]
	for _, c := range []byte{a, b} {
		if c == Wildcard {
			continue
		}
		if _, ok := machine.Index(c); !ok {
			return Slot{}, fmt.Errorf("%w: %q: %q is neither A-Z nor %q", ErrInvalidSlot, token, c, Wildcard)
		}
	}
	switch {
	case a == Wildcard && b == Wildcard:
		return UnknownSlot(), nil
	case a == Wildcard || b == Wildcard:
		return Slot{Kind: HalfKnown, Pair: machine.Pair{A: a, B: b}}, nil
	case a == b:
		return Slot{}, fmt.Errorf("%w: %q connects a letter to itself", ErrInvalidSlot, token)
	default:
		return FixedSlot(a, b), nil
	}
}

// ParseSlots parses tokens and checks that no letter is fixed twice and that
// the slots fit on the plugboard.
func ParseSlots(tokens []string) ([]Slot, error) {
	slots := make([]Slot, 0, len(tokens))
	for _, tok := range tokens {
		s, err := ParseSlot(tok)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	if err := ValidateSlots(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// ValidateSlots checks slot count and letter disjointness.
func ValidateSlots(slots []Slot) error {
	if len(slots) > machine.MaxPlugboardPairs {
		return fmt.Errorf("%w: %d slots, at most %d leads", ErrTooManySlots, len(slots), machine.MaxPlugboardPairs)
	}
	var used [machine.AlphabetSize]bool
	for _, s := range slots {
		for _, c := range s.known() {
			i := int(c - 'A')
			if used[i] {
				return fmt.Errorf("%w: %c", ErrLetterReused, c)
			}
			used[i] = true
		}
	}
	return nil
}

// String returns the token form.
func (s Slot) String() string { return s.Pair.String() }

// known returns the letters this slot fixes.
func (s Slot) known() []byte {
	var out []byte
	if s.Pair.A != Wildcard {
		out = append(out, s.Pair.A)
	}
	if s.Pair.B != Wildcard {
		out = append(out, s.Pair.B)
	}
	return out
}

// fill returns the pair with its wildcard replaced by c.
func (s Slot) fill(c byte) machine.Pair {
	p := s.Pair
	if p.A == Wildcard {
		p.A = c
	} else {
		p.B = c
	}
	return p
}
