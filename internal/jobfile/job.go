package jobfile

import (
	"fmt"
	"strings"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/canon"
	"github.com/roach88/enigma/internal/textfmt"
)

// Any marks a slot about which nothing is known.
const Any = "*"

// DefaultRotorCount is used when a job gives neither rotor_count nor any
// per-rotor list.
const DefaultRotorCount = 3

// Job describes a search. The json tags are used when decoding CUE.
type Job struct {
	Name        string `yaml:"name" json:"name" validate:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// Ciphertext may contain spaces, lower case and punctuation; it is
	// normalized before searching.
	Ciphertext string   `yaml:"ciphertext" json:"ciphertext" validate:"required"`
	Cribs      []string `yaml:"cribs,omitempty" json:"cribs,omitempty" validate:"dive,required"`

	RotorCount   int        `yaml:"rotor_count,omitempty" json:"rotor_count,omitempty" validate:"omitempty,min=3,max=4"`
	Rotors       [][]string `yaml:"rotors,omitempty" json:"rotors,omitempty" validate:"omitempty,min=3,max=4,dive,dive,required"`
	Positions    []string   `yaml:"positions,omitempty" json:"positions,omitempty" validate:"omitempty,min=3,max=4"`
	RingSettings [][]int    `yaml:"ring_settings,omitempty" json:"ring_settings,omitempty" validate:"omitempty,min=3,max=4,dive,dive,min=1,max=26"`
	Plugboard    []string   `yaml:"plugboard,omitempty" json:"plugboard,omitempty" validate:"max=10,dive,len=2"`
	Reflectors   []string   `yaml:"reflectors,omitempty" json:"reflectors,omitempty" validate:"dive,required"`

	ReflectorModifications *ReflectorModifications `yaml:"reflector_modifications,omitempty" json:"reflector_modifications,omitempty"`

	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// ReflectorModifications allows the reflector to have been rewired.
type ReflectorModifications struct {
	Allow bool `yaml:"allow" json:"allow"`

	// Pairs is the even number of wires whose partners were exchanged.
	Pairs int `yaml:"pairs" json:"pairs" validate:"min=0,max=12"`
}

// Expect is the outcome a job's author expects, checked after the search.
type Expect struct {
	Found     *bool  `yaml:"found,omitempty" json:"found,omitempty"`
	Plaintext string `yaml:"plaintext,omitempty" json:"plaintext,omitempty"`
}

// NormalizedCiphertext returns the normalized ciphertext together with the report
// of what normalization changed.
func (j *Job) NormalizedCiphertext() textfmt.Report {
	return textfmt.Normalize(j.Ciphertext)
}

// NormalizedCribs returns the cribs with non-letters dropped and case
// folded.
func (j *Job) NormalizedCribs() []string {
	out := make([]string, 0, len(j.Cribs))
	for _, c := range j.Cribs {
		out = append(out, textfmt.Normalize(c).Text)
	}
	return out
}

// rotorCount infers the number of rotors from the explicit count or the
// longest per-rotor list.
func (j *Job) rotorCount() int {
	if j.RotorCount != 0 {
		return j.RotorCount
	}
	n := max(len(j.Rotors), len(j.Positions), len(j.RingSettings))
	if n == 0 {
		return DefaultRotorCount
	}
	return n
}

// Constraints converts the job to search constraints. Per-rotor lists that
// are given keep their length, so a mismatch with the rotor count is
// reported by breaker.Constraints.Validate.
func (j *Job) Constraints() breaker.Constraints {
	c := breaker.DefaultConstraints(j.rotorCount())

	if len(j.Rotors) > 0 {
		rotors := breaker.DefaultConstraints(len(j.Rotors)).Rotors
		for i, slot := range j.Rotors {
			if !isAny(slot) {
				rotors[i] = slot
			}
		}
		c.Rotors = rotors
	}

	if len(j.Positions) > 0 {
		positions := make([]string, len(j.Positions))
		for i, slot := range j.Positions {
			slot = strings.ToUpper(strings.TrimSpace(slot))
			if slot == "" || slot == Any {
				slot = breaker.Alphabet
			}
			positions[i] = slot
		}
		c.Positions = positions
	}

	if len(j.RingSettings) > 0 {
		rings := breaker.DefaultConstraints(len(j.RingSettings)).RingSettings
		for i, slot := range j.RingSettings {
			if len(slot) > 0 {
				rings[i] = slot
			}
		}
		c.RingSettings = rings
	}

	for _, tok := range j.Plugboard {
		c.Plugboard = append(c.Plugboard, strings.ToUpper(tok))
	}

	if len(j.Reflectors) > 0 {
		c.Reflectors = j.Reflectors
	}

	if m := j.ReflectorModifications; m != nil && m.Allow {
		c.ModifyReflector = true
		c.ReflectorSwaps = m.Pairs
	}
	return c
}

func isAny(slot []string) bool {
	return len(slot) == 0 || (len(slot) == 1 && slot[0] == Any)
}

// hashKey is what identifies a search: the name, description and
// expectation do not change the outcome.
type hashKey struct {
	Ciphertext  string              `json:"ciphertext"`
	Cribs       []string            `json:"cribs"`
	Constraints breaker.Constraints `json:"constraints"`
}

// Hash returns the canonical hash of the search the job describes.
func (j *Job) Hash() (string, error) {
	return canon.JobHash(hashKey{
		Ciphertext:  j.NormalizedCiphertext().Text,
		Cribs:       j.NormalizedCribs(),
		Constraints: j.Constraints(),
	})
}

// Check compares a search result against the job's expectation. A job
// without one always passes.
func (j *Job) Check(res *breaker.Result) error {
	e := j.Expect
	if e == nil {
		return nil
	}
	if e.Found != nil && *e.Found != res.Found {
		return fmt.Errorf("expected found=%t, got found=%t", *e.Found, res.Found)
	}
	if e.Plaintext != "" {
		want := textfmt.Normalize(e.Plaintext).Text
		if want != res.Plaintext {
			return fmt.Errorf("expected plaintext %q, got %q", want, res.Plaintext)
		}
	}
	return nil
}
