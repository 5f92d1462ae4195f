// Package machine emulates a three or four rotor cipher machine.
//
// A keypress flows through five stages:
//
//	plugboard -> rotors (right to left) -> reflector -> rotors (left to right) -> plugboard
//
// Before every keypress the rotor assembly steps. The rightmost rotor always
// advances; a rotor sitting on its notch carries its left neighbour along and,
// because the check is repeated on the following keypress, the middle rotor
// advances twice in a row (the double-step anomaly).
//
// # Orientation
//
// Rotor names, start positions and ring settings are written in display
// order, leftmost rotor first, the way an operator reads them off the
// machine:
//
//	m, _ := machine.NewFromSettings(machine.Settings{
//	    Rotors:       []string{"I", "II", "III"},
//	    Positions:    "AAZ",
//	    RingSettings: []int{1, 1, 1},
//	    Reflector:    "B",
//	})
//	out, _ := m.Encode("A") // "U"
//
// Internally the assembly stores rotors rightmost first and expresses the
// neighbour relation by slice index.
//
// # Determinism
//
// Encoding is a pure function of the configuration and the rotor positions.
// Encoding a message, calling Reset, and encoding the result again returns
// the original message.
//
// # Concurrency
//
// A Machine is not safe for concurrent use. Searches that fan out across
// goroutines give each worker its own Machine.
package machine
