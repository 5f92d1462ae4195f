package machine

// AlphabetSize is the number of contacts on every wheel.
const AlphabetSize = 26

// noNotch marks rotors without a turnover notch (Beta, Gamma).
const noNotch = -1

type rotorSpec struct {
	wiring string
	notch  int
}

// rotorNames lists the rotor catalog in its canonical enumeration order.
var rotorNames = []string{"I", "II", "III", "IV", "V", "Beta", "Gamma"}

var rotorCatalog = map[string]rotorSpec{
	"I":     {wiring: "EKMFLGDQVZNTOWYHXUSPAIBRCJ", notch: 'Q' - 'A'},
	"II":    {wiring: "AJDKSIRUXBLHWTMCQGZNPYFVOE", notch: 'E' - 'A'},
	"III":   {wiring: "BDFHJLCPRTXVZNYEIWGAKMUSQO", notch: 'V' - 'A'},
	"IV":    {wiring: "ESOVPZJAYQUIRHXLNFTGKDCMWB", notch: 'J' - 'A'},
	"V":     {wiring: "VZBRGITYUPSDNHLXAWMJQOFECK", notch: 'Z' - 'A'},
	"Beta":  {wiring: "LEYJVCNIXWPBQMDRTAKZGFUHOS", notch: noNotch},
	"Gamma": {wiring: "FSOKANUERHMBTIYCWLQPZXVGJD", notch: noNotch},
}

// reflectorNames lists the reflector catalog in its canonical enumeration order.
var reflectorNames = []string{"A", "B", "C"}

var reflectorCatalog = map[string]string{
	"A": "EJMZALYXVBWFCRQUONTSPIKHGD",
	"B": "YRUHQSLDPXNGOKMIEBFZCWVJAT",
	"C": "FVPJIAOYEDRZXWGCTKUQSBNMHL",
}

// RotorNames returns the rotor catalog in enumeration order.
func RotorNames() []string {
	out := make([]string, len(rotorNames))
	copy(out, rotorNames)
	return out
}

// ReflectorNames returns the reflector catalog in enumeration order.
func ReflectorNames() []string {
	out := make([]string, len(reflectorNames))
	copy(out, reflectorNames)
	return out
}

// IsRotorName reports whether name is in the rotor catalog.
func IsRotorName(name string) bool {
	_, ok := rotorCatalog[name]
	return ok
}

// IsReflectorName reports whether name is in the reflector catalog.
func IsReflectorName(name string) bool {
	_, ok := reflectorCatalog[name]
	return ok
}

// StandardReflectorWiring returns the catalog table for a reflector.
func StandardReflectorWiring(name string) ([AlphabetSize]int, error) {
	wiring, ok := reflectorCatalog[name]
	if !ok {
		return [AlphabetSize]int{}, newConfigError("reflector", "reflector %q does not exist", name)
	}
	return tableFromString(wiring), nil
}

func tableFromString(s string) [AlphabetSize]int {
	var t [AlphabetSize]int
	for i := 0; i < AlphabetSize; i++ {
		t[i] = int(s[i] - 'A')
	}
	return t
}
