package breaker

import "fmt"

// State is the phase of a Breaker.
type State int32

const (
	// Idle is the state of a Breaker that has not searched yet.
	Idle State = iota
	// GeneratingCombinations covers constraint validation and the
	// materialization of the shared candidate dimensions.
	GeneratingCombinations
	// Searching covers the fan-out over candidates.
	Searching
	// Done is entered when a search finishes, successfully or not.
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case GeneratingCombinations:
		return "generating_combinations"
	case Searching:
		return "searching"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
