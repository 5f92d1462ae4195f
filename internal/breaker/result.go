package breaker

import (
	"cmp"

	"github.com/roach88/enigma/internal/machine"
)

// Result is the outcome of a search.
type Result struct {
	// Found is false when no candidate passed the crib filter.
	Found bool `json:"found"`

	// Plaintext is the best decode, empty when nothing was found.
	Plaintext string `json:"plaintext"`

	// Score is the dictionary score of Plaintext.
	Score int `json:"score"`

	// Tested counts decoded candidates.
	Tested int64 `json:"tested"`

	// Matched counts candidates that passed the crib filter and were scored.
	Matched int64 `json:"matched"`

	// Settings reproduce Plaintext from the ciphertext on a reset machine.
	// Rotors, positions and ring settings are listed leftmost rotor first,
	// the order they are set on the machine, not right to left.
	Settings machine.Settings `json:"settings"`
}

// candidateKey locates a candidate in iteration order: the job ordinal,
// then the position/ring index within the job.
type candidateKey struct {
	job   int64
	inner int
}

func (k candidateKey) compare(o candidateKey) int {
	if c := cmp.Compare(k.job, o.job); c != 0 {
		return c
	}
	return cmp.Compare(k.inner, o.inner)
}

type candidate struct {
	key       candidateKey
	plaintext string
	score     int
	settings  machine.Settings
}

// better reports whether a beats b: higher score, then the lexicographically
// greater plaintext, then the earlier candidate.
func better(a, b *candidate) bool {
	if b == nil {
		return a != nil
	}
	if a == nil {
		return false
	}
	if a.score != b.score {
		return a.score > b.score
	}
	if a.plaintext != b.plaintext {
		return a.plaintext > b.plaintext
	}
	return a.key.compare(b.key) < 0
}
