// Package wordlist holds the dictionary used to rank candidate decodes.
//
// A Dictionary is built once and never mutated; a Scorer compiles it into
// an Aho-Corasick automaton so a decode is scanned in a single pass no
// matter how many words the dictionary holds.
package wordlist

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

//go:embed words.txt
var defaultWords string

// Dictionary is an ordered, read-only list of upper-case words.
type Dictionary struct {
	words []string
}

// New returns a dictionary of words, trimmed and upper-cased. Blank entries
// are skipped.
func New(words []string) *Dictionary {
	d := &Dictionary{words: make([]string, 0, len(words))}
	for _, w := range words {
		if w = strings.ToUpper(strings.TrimSpace(w)); w != "" {
			d.words = append(d.words, w)
		}
	}
	return d
}

// Load reads a newline-delimited word list.
func Load(r io.Reader) (*Dictionary, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return New(words), nil
}

// LoadFile reads a newline-delimited word list from path.
func LoadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	d, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

var defaultDict = sync.OnceValue(func() *Dictionary {
	d, _ := Load(strings.NewReader(defaultWords))
	return d
})

// Default returns the built-in list of common English words.
func Default() *Dictionary {
	return defaultDict()
}

// Words returns a copy of the word list.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.words) }
