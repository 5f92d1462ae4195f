package machine

// Machine wires a plugboard, a rotor assembly and a reflector together.
type Machine struct {
	plugboard *Plugboard
	rotors    *Assembly
	reflector *Reflector
}

// New returns an unconfigured machine: no rotors, no reflector and an empty
// plugboard.
func New() *Machine {
	return &Machine{
		plugboard: NewPlugboard(),
		rotors:    NewAssembly(),
	}
}

// NewFromSettings returns a machine configured from s.
func NewFromSettings(s Settings) (*Machine, error) {
	m := New()
	if err := m.Apply(s); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply replaces the whole configuration. Empty Positions means every rotor
// starts at A; empty RingSettings means every ring is at 1. If any part of s
// is rejected the machine keeps its previous configuration.
func (m *Machine) Apply(s Settings) error {
	rotors, err := buildAssembly(s.Rotors)
	if err != nil {
		return err
	}
	if s.Positions != "" {
		if err := rotors.SetPositionLetters(s.Positions); err != nil {
			return err
		}
	}
	if len(s.RingSettings) > 0 {
		if err := rotors.SetRingSettings(s.RingSettings); err != nil {
			return err
		}
	}

	var reflector *Reflector
	if s.Reflector != "" {
		reflector, err = NewReflector(s.Reflector)
		if err != nil {
			return err
		}
		delta, err := ParsePairs(s.ReflectorWiring)
		if err != nil {
			return err
		}
		if err := reflector.Rewire(delta); err != nil {
			return err
		}
	} else if len(s.ReflectorWiring) > 0 {
		return newConfigError("reflector", "reflector wiring given without a reflector")
	}

	leads, err := ParsePairs(s.Plugboard)
	if err != nil {
		return err
	}
	board := NewPlugboard()
	if err := board.SetPairs(leads); err != nil {
		return err
	}

	m.rotors = rotors
	m.reflector = reflector
	m.plugboard = board
	return nil
}

func buildAssembly(names []string) (*Assembly, error) {
	a := NewAssembly()
	for i := len(names) - 1; i >= 0; i-- {
		r, err := NewRotor(names[i])
		if err != nil {
			return nil, err
		}
		if err := a.Add(r); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Settings returns the current configuration with start positions.
func (m *Machine) Settings() Settings {
	s := Settings{
		Rotors:       m.rotors.Names(),
		Positions:    m.rotors.StartPositions(),
		RingSettings: m.rotors.RingSettings(),
		Plugboard:    PairStrings(m.plugboard.Pairs()),
	}
	if m.reflector != nil {
		s.Reflector = m.reflector.Name()
		if m.reflector.Modified() {
			s.ReflectorWiring = PairStrings(m.reflector.DiffFromStandard())
		}
	}
	return s
}

// SetRotors installs rotors by name in display order, leftmost first, each
// at position A with ring setting 1.
func (m *Machine) SetRotors(names ...string) error {
	a, err := buildAssembly(names)
	if err != nil {
		return err
	}
	m.rotors = a
	return nil
}

// SetReflector installs a catalog reflector with its standard wiring.
func (m *Machine) SetReflector(name string) error {
	r, err := NewReflector(name)
	if err != nil {
		return err
	}
	m.reflector = r
	return nil
}

// Plugboard returns the live plugboard.
func (m *Machine) Plugboard() *Plugboard { return m.plugboard }

// Rotors returns the live rotor assembly.
func (m *Machine) Rotors() *Assembly { return m.rotors }

// Reflector returns the live reflector, or nil if none is installed.
func (m *Machine) Reflector() *Reflector { return m.reflector }

// Reset returns every rotor to its start position.
func (m *Machine) Reset() { m.rotors.Reset() }

// Validate checks the machine can encode.
func (m *Machine) Validate() error {
	if m.reflector == nil {
		return newNotConfiguredError("no reflector installed")
	}
	return m.rotors.Validate()
}

// Encode enciphers msg, which must consist of the letters A-Z only. The
// rotors step once per letter and are not reset afterwards. On error no
// rotor has moved.
func (m *Machine) Encode(msg string) (string, error) {
	out := make([]byte, len(msg))
	if err := m.EncodeBytes(out, []byte(msg)); err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeBytes is Encode writing into dst, which must be at least as long as
// src.
func (m *Machine) EncodeBytes(dst, src []byte) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, c := range src {
		if _, ok := Index(c); !ok {
			return letterError("machine", c)
		}
	}
	for i, c := range src {
		m.rotors.Step()
		x := m.plugboard.Encode(int(c - 'A'))
		x = m.rotors.EncodeForward(x)
		x, err := m.reflector.Encode(x)
		if err != nil {
			return err
		}
		x = m.rotors.EncodeBackward(x)
		x = m.plugboard.Encode(x)
		dst[i] = Letter(x)
	}
	return nil
}
