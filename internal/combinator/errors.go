package combinator

import "errors"

var (
	// ErrInvalidSlot is returned for a malformed plugboard slot token.
	ErrInvalidSlot = errors.New("invalid plugboard slot")

	// ErrLetterReused is returned when a letter is fixed by more than one
	// plugboard slot.
	ErrLetterReused = errors.New("plugboard letter reused")

	// ErrTooManySlots is returned when more slots are given than there are
	// leads.
	ErrTooManySlots = errors.New("too many plugboard slots")

	// ErrSwapCount is returned for an odd or out-of-range number of
	// reflector contacts to rewire.
	ErrSwapCount = errors.New("invalid reflector swap count")
)
