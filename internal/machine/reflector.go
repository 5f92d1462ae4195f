package machine

// Reflector is a fixed-point-free involution over the alphabet. Its wiring
// may be rewired away from the catalog table; Modified reports when it has
// been.
type Reflector struct {
	name     string
	standard [AlphabetSize]int
	wiring   [AlphabetSize]int
}

// NewReflector returns the catalog reflector with the given name.
func NewReflector(name string) (*Reflector, error) {
	std, err := StandardReflectorWiring(name)
	if err != nil {
		return nil, err
	}
	return &Reflector{name: name, standard: std, wiring: std}, nil
}

// Name returns the catalog name.
func (r *Reflector) Name() string { return r.name }

// Wiring returns a copy of the active table.
func (r *Reflector) Wiring() [AlphabetSize]int { return r.wiring }

// Standard returns a copy of the catalog table.
func (r *Reflector) Standard() [AlphabetSize]int { return r.standard }

// Modified reports whether the active table differs from the catalog one.
func (r *Reflector) Modified() bool { return r.wiring != r.standard }

// Encode reflects a contact.
func (r *Reflector) Encode(in int) (int, error) {
	if in < 0 || in >= AlphabetSize {
		return 0, newContactError("reflector", "contact %d out of range 0-25", in)
	}
	return r.wiring[in], nil
}

// SwapWiring replaces the active table. The table must be an involution
// without fixed points; otherwise the reflector is left unchanged.
func (r *Reflector) SwapWiring(table [AlphabetSize]int) error {
	if err := ValidateReflectorWiring(table); err != nil {
		return err
	}
	r.wiring = table
	return nil
}

// ResetToStandard restores the catalog table.
func (r *Reflector) ResetToStandard() {
	r.wiring = r.standard
}

// DiffFromStandard lists the active pairs that are not catalog pairs, each
// with its letters in order and the list sorted by first letter.
func (r *Reflector) DiffFromStandard() []Pair {
	var out []Pair
	for i, j := range r.wiring {
		if i < j && r.standard[i] != j {
			out = append(out, Pair{A: Letter(i), B: Letter(j)})
		}
	}
	return out
}

// Rewire connects each pair on top of the catalog table and installs the
// result. Letters not named in pairs keep their catalog partners, so the
// pairs must describe a complete involution, which is the form
// DiffFromStandard produces. Rewire with no pairs restores the catalog
// table.
func (r *Reflector) Rewire(pairs []Pair) error {
	table := r.standard
	touched := make(map[int]bool, 2*len(pairs))
	for _, p := range pairs {
		a, okA := Index(p.A)
		b, okB := Index(p.B)
		if !okA || !okB || a == b {
			return newConfigError("reflector", "invalid wiring pair %q", p.String())
		}
		if touched[a] || touched[b] {
			return newConfigError("reflector", "wiring pair %q reuses a letter", p.String())
		}
		touched[a], touched[b] = true, true
		table[a], table[b] = b, a
	}
	if err := ValidateReflectorWiring(table); err != nil {
		return err
	}
	r.wiring = table
	return nil
}

// ValidateReflectorWiring checks that table is an involution with no fixed
// points.
func ValidateReflectorWiring(table [AlphabetSize]int) error {
	for i, j := range table {
		if j < 0 || j >= AlphabetSize {
			return newConfigError("reflector", "contact %c maps out of range", Letter(i))
		}
		if j == i {
			return newConfigError("reflector", "contact %c maps to itself", Letter(i))
		}
		if table[j] != i {
			return newConfigError("reflector", "contact %c maps to %c but %c maps to %c",
				Letter(i), Letter(j), Letter(j), Letter(table[j]))
		}
	}
	return nil
}
