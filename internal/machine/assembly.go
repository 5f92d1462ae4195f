package machine

const (
	// MinRotors is the smallest assembly that can encode.
	MinRotors = 3

	// MaxRotors is the largest supported assembly. The fourth rotor never
	// steps.
	MaxRotors = 4
)

// fourthSlot is the internal index of the non-stepping fourth rotor.
const fourthSlot = 3

// Assembly is the ordered rotor stack. Index 0 is the rightmost rotor, the
// one nearest the plugboard.
type Assembly struct {
	rotors []*Rotor
}

// NewAssembly returns an empty assembly.
func NewAssembly() *Assembly {
	return &Assembly{}
}

// Add appends r to the left end of the assembly.
func (a *Assembly) Add(r *Rotor) error {
	if len(a.rotors) >= MaxRotors {
		return newConfigError("assembly", "at most %d rotors can be installed", MaxRotors)
	}
	for _, existing := range a.rotors {
		if existing.name == r.name {
			return newConfigError("assembly", "rotor %q is already installed", r.name)
		}
	}
	a.rotors = append(a.rotors, r)
	return nil
}

// Len returns the number of installed rotors.
func (a *Assembly) Len() int { return len(a.rotors) }

// Clear removes every rotor.
func (a *Assembly) Clear() { a.rotors = nil }

// Rotor returns the rotor at internal index i (0 = rightmost).
func (a *Assembly) Rotor(i int) *Rotor { return a.rotors[i] }

// Names returns rotor names in display order, leftmost first.
func (a *Assembly) Names() []string {
	out := make([]string, len(a.rotors))
	for i, r := range a.rotors {
		out[len(a.rotors)-1-i] = r.name
	}
	return out
}

// Positions returns the current window letters in display order.
func (a *Assembly) Positions() string {
	out := make([]byte, len(a.rotors))
	for i, r := range a.rotors {
		out[len(a.rotors)-1-i] = Letter(r.position)
	}
	return string(out)
}

// StartPositions returns the start letters in display order.
func (a *Assembly) StartPositions() string {
	out := make([]byte, len(a.rotors))
	for i, r := range a.rotors {
		out[len(a.rotors)-1-i] = Letter(r.start)
	}
	return string(out)
}

// RingSettings returns ring settings (1-26) in display order.
func (a *Assembly) RingSettings() []int {
	out := make([]int, len(a.rotors))
	for i, r := range a.rotors {
		out[len(a.rotors)-1-i] = r.ringSetting + 1
	}
	return out
}

// SetPositions sets start positions given in display order. Nothing is
// changed if any value is rejected.
func (a *Assembly) SetPositions(positions []int) error {
	if len(positions) != len(a.rotors) {
		return newConfigError("assembly", "got %d positions for %d rotors", len(positions), len(a.rotors))
	}
	for _, p := range positions {
		if p < 0 || p >= AlphabetSize {
			return newConfigError("assembly", "position %d out of range 0-25", p)
		}
	}
	for i, p := range positions {
		_ = a.rotors[len(a.rotors)-1-i].SetPosition(p)
	}
	return nil
}

// SetPositionLetters is SetPositions for a letter string such as "AAZ".
func (a *Assembly) SetPositionLetters(letters string) error {
	positions := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		p, ok := Index(letters[i])
		if !ok {
			return newConfigError("assembly", "position %q is not a letter A-Z", letters[i])
		}
		positions[i] = p
	}
	return a.SetPositions(positions)
}

// SetRingSettings sets ring settings (1-26) given in display order.
// Nothing is changed if any value is rejected.
func (a *Assembly) SetRingSettings(settings []int) error {
	if len(settings) != len(a.rotors) {
		return newConfigError("assembly", "got %d ring settings for %d rotors", len(settings), len(a.rotors))
	}
	for _, s := range settings {
		if s < 1 || s > AlphabetSize {
			return newConfigError("assembly", "ring setting %d out of range 1-26", s)
		}
	}
	for i, s := range settings {
		_ = a.rotors[len(a.rotors)-1-i].SetRingSetting(s)
	}
	return nil
}

// Reset returns every rotor to its start position.
func (a *Assembly) Reset() {
	for _, r := range a.rotors {
		r.Reset()
	}
}

// Validate checks the assembly can encode.
func (a *Assembly) Validate() error {
	if n := len(a.rotors); n < MinRotors || n > MaxRotors {
		return newNotConfiguredError("need %d or %d rotors, have %d", MinRotors, MaxRotors, n)
	}
	return nil
}

// Step advances the assembly by one keypress. The rightmost rotor always
// moves; each rotor further left moves only while the one to its right
// moved and it is itself on its notch without having been carried this
// keypress. That second condition produces the double step of the middle
// rotor.
func (a *Assembly) Step() {
	for _, r := range a.rotors {
		r.stepped = false
	}
	last := len(a.rotors) - 1
	for i, r := range a.rotors {
		if i == 0 || (i != last && r.AtNotch() && !r.stepped) {
			a.rotate(i)
			continue
		}
		return
	}
}

// rotate advances rotor i, first carrying its left neighbour when i is on
// its notch.
func (a *Assembly) rotate(i int) {
	if i == fourthSlot {
		return
	}
	r := a.rotors[i]
	if i < len(a.rotors)-1 && r.AtNotch() {
		a.rotate(i + 1)
	}
	r.advance()
}

// EncodeForward passes a contact right to left through every rotor.
func (a *Assembly) EncodeForward(in int) int {
	out := in
	last := len(a.rotors) - 1
	for i, r := range a.rotors {
		var entry *Rotor
		if i > 0 {
			entry = a.rotors[i-1]
		}
		out = r.encodeForward(out, entry, i == last)
	}
	return out
}

// EncodeBackward passes a contact left to right through every rotor.
func (a *Assembly) EncodeBackward(in int) int {
	out := in
	last := len(a.rotors) - 1
	for i := last; i >= 0; i-- {
		var entry *Rotor
		if i < last {
			entry = a.rotors[i+1]
		}
		out = a.rotors[i].encodeBackward(out, entry, i == 0)
	}
	return out
}
