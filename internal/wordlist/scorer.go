package wordlist

import (
	"slices"

	ahocorasick "github.com/BobuSumisu/aho-corasick"

	"github.com/roach88/enigma/internal/canon"
)

// MinWordLength is the shortest word that contributes to a score. Shorter
// fragments turn up in random letter soup too often to mean anything.
const MinWordLength = 3

// Scorer rates text by the dictionary words it contains. It is safe for
// concurrent use.
type Scorer struct {
	trie  *ahocorasick.Trie
	words []string
}

// NewScorer compiles the scoring words of d: those of at least
// MinWordLength letters A-Z, each counted once however often it is listed.
func NewScorer(d *Dictionary) *Scorer {
	seen := make(map[string]bool, d.Len())
	var words []string
	for _, w := range d.words {
		if len(w) < MinWordLength || seen[w] || !isLetters(w) {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return &Scorer{
		trie:  ahocorasick.NewTrieBuilder().AddStrings(words).Build(),
		words: words,
	}
}

// Len returns the number of scoring words.
func (s *Scorer) Len() int { return len(s.words) }

// Score returns the summed length of every scoring word that occurs in
// text at least once.
func (s *Scorer) Score(text string) int {
	if len(s.words) == 0 {
		return 0
	}
	hit := make([]bool, len(s.words))
	score := 0
	for _, m := range s.trie.MatchString(text) {
		i := m.Pattern()
		if hit[i] {
			continue
		}
		hit[i] = true
		score += len(s.words[i])
	}
	return score
}

// Fingerprint identifies the scoring words. Two scorers with the same
// fingerprint rate every text the same, whatever order or duplicates their
// dictionaries had.
func (s *Scorer) Fingerprint() (string, error) {
	words := slices.Clone(s.words)
	slices.Sort(words)
	return canon.DictionaryFingerprint(words)
}

// Found returns the scoring words present in text, sorted.
func (s *Scorer) Found(text string) []string {
	if len(s.words) == 0 {
		return nil
	}
	hit := make([]bool, len(s.words))
	var out []string
	for _, m := range s.trie.MatchString(text) {
		if i := m.Pattern(); !hit[i] {
			hit[i] = true
			out = append(out, s.words[i])
		}
	}
	slices.Sort(out)
	return out
}

func isLetters(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
