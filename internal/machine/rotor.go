package machine

// Rotor is one wired wheel. Its forward table maps right-side contacts to
// left-side contacts; backward is the inverse.
type Rotor struct {
	name        string
	forward     [AlphabetSize]int
	backward    [AlphabetSize]int
	notch       int
	position    int
	ringSetting int
	start       int
	stepped     bool
}

// NewRotor returns the catalog rotor with the given name at position A and
// ring setting 1.
func NewRotor(name string) (*Rotor, error) {
	entry, ok := rotorCatalog[name]
	if !ok {
		return nil, newConfigError("rotor", "rotor %q does not exist", name)
	}
	r := &Rotor{name: name, notch: entry.notch}
	r.forward = tableFromString(entry.wiring)
	for in, out := range r.forward {
		r.backward[out] = in
	}
	return r, nil
}

// Name returns the catalog name.
func (r *Rotor) Name() string { return r.name }

// Position returns the current window letter as an index 0-25.
func (r *Rotor) Position() int { return r.position }

// StartPosition returns the position Reset restores.
func (r *Rotor) StartPosition() int { return r.start }

// RingSetting returns the ring offset, 0-25 (ring setting 1 is offset 0).
func (r *Rotor) RingSetting() int { return r.ringSetting }

// HasNotch reports whether the rotor can carry its left neighbour.
func (r *Rotor) HasNotch() bool { return r.notch != noNotch }

// AtNotch reports whether the rotor currently shows its turnover letter.
func (r *Rotor) AtNotch() bool { return r.notch != noNotch && r.position == r.notch }

// Stepped reports whether the rotor advanced during the current keypress.
func (r *Rotor) Stepped() bool { return r.stepped }

// SetPosition sets both the current and the start position.
func (r *Rotor) SetPosition(pos int) error {
	if pos < 0 || pos >= AlphabetSize {
		return newConfigError("rotor", "position %d out of range 0-25", pos)
	}
	r.position = pos
	r.start = pos
	return nil
}

// SetRingSetting sets the ring offset from the operator's 1-26 value.
func (r *Rotor) SetRingSetting(setting int) error {
	if setting < 1 || setting > AlphabetSize {
		return newConfigError("rotor", "ring setting %d out of range 1-26", setting)
	}
	r.ringSetting = setting - 1
	return nil
}

// Reset restores the start position and clears the stepped flag.
func (r *Rotor) Reset() {
	r.position = r.start
	r.stepped = false
}

func (r *Rotor) advance() {
	r.position = (r.position + 1) % AlphabetSize
	r.stepped = true
}

// offset is the rotation of the wiring core relative to the housing.
func offset(r *Rotor) int {
	if r == nil {
		return 0
	}
	return r.position - r.ringSetting
}

// encodeForward passes a signal right to left. entry is the rotor the
// signal came from (nil at the plugboard side); exit marks the leftmost
// rotor, whose output is re-expressed in housing coordinates for the
// reflector.
func (r *Rotor) encodeForward(in int, entry *Rotor, exit bool) int {
	out := r.forward[mod26(in+offset(r)-offset(entry))]
	if exit {
		out = mod26(out - offset(r))
	}
	return out
}

// encodeBackward passes a signal left to right. entry is the rotor the
// signal came from (nil at the reflector side); exit marks the rightmost
// rotor, whose output goes to the plugboard.
func (r *Rotor) encodeBackward(in int, entry *Rotor, exit bool) int {
	out := r.backward[mod26(in+offset(r)-offset(entry))]
	if exit {
		out = mod26(out - offset(r))
	}
	return out
}
