package breaker

import (
	"fmt"
	"slices"

	"github.com/roach88/enigma/internal/combinator"
	"github.com/roach88/enigma/internal/machine"
)

// Alphabet is the full set of rotor start positions.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Constraints describe what is known about a key. Per-rotor lists are in
// display order, leftmost rotor first, and must all have the same length:
// the number of rotors (3 or 4).
type Constraints struct {
	// Rotors lists, per slot, the rotor names that may sit there.
	Rotors [][]string `json:"rotors" yaml:"rotors"`

	// Positions lists, per slot, the possible start letters as a string,
	// e.g. "MJ" for "M or J".
	Positions []string `json:"positions" yaml:"positions"`

	// RingSettings lists, per slot, the possible ring settings (1-26).
	RingSettings [][]int `json:"ring_settings" yaml:"ring_settings"`

	// Plugboard holds one token per lead: "AB" (known), "A?" or "?A" (one
	// end known) or "??" (unknown). No tokens means no leads.
	Plugboard []string `json:"plugboard" yaml:"plugboard"`

	// Reflectors lists the possible reflector names.
	Reflectors []string `json:"reflectors" yaml:"reflectors"`

	// ModifyReflector allows the reflector to have been rewired.
	ModifyReflector bool `json:"modify_reflector" yaml:"modify_reflector"`

	// ReflectorSwaps is the even number of reflector wires whose partners
	// may have been exchanged. Only meaningful with ModifyReflector.
	ReflectorSwaps int `json:"reflector_swaps" yaml:"reflector_swaps"`
}

// DefaultConstraints returns constraints for n rotors with nothing known:
// every rotor, position, ring setting and reflector, no plugboard leads and
// no reflector rewiring.
func DefaultConstraints(n int) Constraints {
	c := Constraints{Reflectors: machine.ReflectorNames()}
	for range n {
		c.Rotors = append(c.Rotors, machine.RotorNames())
		c.Positions = append(c.Positions, Alphabet)
		c.RingSettings = append(c.RingSettings, allRings())
	}
	return c
}

func allRings() []int {
	out := make([]int, machine.AlphabetSize)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// RotorCount returns the number of rotor slots.
func (c Constraints) RotorCount() int { return len(c.Rotors) }

// Validate checks every constraint. The first problem found is returned as
// a *ConfigError.
func (c Constraints) Validate() error {
	n := len(c.Rotors)
	if n < machine.MinRotors || n > machine.MaxRotors {
		return configErrorf("rotors", "need %d or %d rotor slots, got %d", machine.MinRotors, machine.MaxRotors, n)
	}
	if len(c.Positions) != n {
		return configErrorf("positions", "got %d slots for %d rotors", len(c.Positions), n)
	}
	if len(c.RingSettings) != n {
		return configErrorf("ring_settings", "got %d slots for %d rotors", len(c.RingSettings), n)
	}

	for i, slot := range c.Rotors {
		field := fmt.Sprintf("rotors[%d]", i)
		if len(slot) == 0 {
			return configErrorf(field, "no candidate rotors")
		}
		for _, name := range slot {
			if !machine.IsRotorName(name) {
				return configErrorf(field, "unknown rotor %q", name)
			}
		}
	}
	if !c.hasRotorOrder() {
		return configErrorf("rotors", "no assignment of distinct rotors fits the slots")
	}

	for i, slot := range c.Positions {
		field := fmt.Sprintf("positions[%d]", i)
		if slot == "" {
			return configErrorf(field, "no candidate positions")
		}
		for j := 0; j < len(slot); j++ {
			if _, ok := machine.Index(slot[j]); !ok {
				return configErrorf(field, "position %q is not a letter A-Z", slot[j])
			}
		}
	}

	for i, slot := range c.RingSettings {
		field := fmt.Sprintf("ring_settings[%d]", i)
		if len(slot) == 0 {
			return configErrorf(field, "no candidate ring settings")
		}
		for _, r := range slot {
			if r < 1 || r > machine.AlphabetSize {
				return configErrorf(field, "ring setting %d out of range 1-26", r)
			}
		}
	}

	if _, err := combinator.ParseSlots(c.Plugboard); err != nil {
		return wrapConfigError("plugboard", err)
	}

	if len(c.Reflectors) == 0 {
		return configErrorf("reflectors", "no candidate reflectors")
	}
	for _, name := range c.Reflectors {
		if !machine.IsReflectorName(name) {
			return configErrorf("reflectors", "unknown reflector %q", name)
		}
	}

	if !c.ModifyReflector && c.ReflectorSwaps != 0 {
		return configErrorf("reflector_swaps", "%d swaps requested but reflector modification is not allowed", c.ReflectorSwaps)
	}
	if c.ReflectorSwaps < 0 || c.ReflectorSwaps%2 != 0 || c.ReflectorSwaps > combinator.ReflectorWires {
		return configErrorf("reflector_swaps", "%d must be even and between 0 and %d", c.ReflectorSwaps, combinator.ReflectorWires-1)
	}
	return nil
}

func (c Constraints) hasRotorOrder() bool {
	for range combinator.RotorOrders(machine.RotorNames(), c.Rotors) {
		return true
	}
	return false
}

// swaps returns the effective reflector swap count.
func (c Constraints) swaps() int {
	if !c.ModifyReflector {
		return 0
	}
	return c.ReflectorSwaps
}

func (c Constraints) positionSlots() [][]int {
	out := make([][]int, len(c.Positions))
	for i, slot := range c.Positions {
		for j := 0; j < len(slot); j++ {
			p, _ := machine.Index(slot[j])
			if !slices.Contains(out[i], p) {
				out[i] = append(out[i], p)
			}
		}
	}
	return out
}

func positionUniverse() []int {
	out := make([]int, machine.AlphabetSize)
	for i := range out {
		out[i] = i
	}
	return out
}
