package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes keep hashes of different kinds of value apart. The
// version suffix allows the encoding to change later.
const (
	DomainJob        = "enigma/job/v1"
	DomainSettings   = "enigma/settings/v1"
	DomainDictionary = "enigma/dictionary/v1"
)

// hashWithDomain returns hex(SHA256(domain || 0x00 || data)).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash returns the domain-separated hash of v's canonical JSON.
func Hash(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", domain, err)
	}
	return hashWithDomain(domain, data), nil
}

// JobHash identifies a search: the same ciphertext, cribs and constraints
// always produce the same hash.
func JobHash(job any) (string, error) {
	return Hash(DomainJob, job)
}

// SettingsFingerprint identifies a machine configuration.
func SettingsFingerprint(settings any) (string, error) {
	return Hash(DomainSettings, settings)
}

// DictionaryFingerprint identifies the word list a search was scored with.
func DictionaryFingerprint(words []string) (string, error) {
	if words == nil {
		words = []string{}
	}
	return Hash(DomainDictionary, words)
}
