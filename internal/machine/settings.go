package machine

// Settings is the complete, serializable configuration of a machine.
// Rotors, Positions and RingSettings are in display order, leftmost first:
// Rotors [I II III] with Positions "AAZ" puts rotor III, the fast rotor,
// at Z.
type Settings struct {
	Rotors          []string `json:"rotors" yaml:"rotors"`
	Positions       string   `json:"positions" yaml:"positions"`
	RingSettings    []int    `json:"ring_settings" yaml:"ring_settings"`
	Plugboard       []string `json:"plugboard" yaml:"plugboard"`
	Reflector       string   `json:"reflector" yaml:"reflector"`
	ReflectorWiring []string `json:"reflector_wiring,omitempty" yaml:"reflector_wiring,omitempty"`
}
