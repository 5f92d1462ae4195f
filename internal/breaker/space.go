package breaker

import (
	"math/big"

	"github.com/roach88/enigma/internal/combinator"
	"github.com/roach88/enigma/internal/machine"
)

// SearchSpace is the number of candidates along each dimension of a
// search. Total is their product.
type SearchSpace struct {
	Plugboard        *big.Int `json:"plugboard"`
	Reflectors       *big.Int `json:"reflectors"`
	ReflectorWirings *big.Int `json:"reflector_wirings"`
	RotorOrders      *big.Int `json:"rotor_orders"`
	Positions        *big.Int `json:"positions"`
	RingSettings     *big.Int `json:"ring_settings"`
	Total            *big.Int `json:"total"`
}

// NewSearchSpace computes the size of the search c describes without
// enumerating it. c must be valid.
func NewSearchSpace(c Constraints) (*SearchSpace, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	slots, err := combinator.ParseSlots(c.Plugboard)
	if err != nil {
		return nil, wrapConfigError("plugboard", err)
	}

	reflectors := 0
	for range combinator.Reflectors(machine.ReflectorNames(), c.Reflectors) {
		reflectors++
	}

	s := &SearchSpace{
		Plugboard:        combinator.PlugboardCount(slots),
		Reflectors:       big.NewInt(int64(reflectors)),
		ReflectorWirings: combinator.ReflectorWiringCount(c.swaps()),
		RotorOrders:      combinator.RotorOrderCount(machine.RotorNames(), c.Rotors),
		Positions:        combinator.ProductCount(positionUniverse(), c.positionSlots()),
		RingSettings:     combinator.ProductCount(allRings(), c.RingSettings),
	}
	s.Total = new(big.Int).Set(s.Plugboard)
	for _, f := range []*big.Int{s.Reflectors, s.ReflectorWirings, s.RotorOrders, s.Positions, s.RingSettings} {
		s.Total.Mul(s.Total, f)
	}
	return s, nil
}

func bigInt(n int64) *big.Int { return big.NewInt(n) }
