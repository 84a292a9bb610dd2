package element

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// IDMode selects the identity policy used at element construction.
type IDMode int

const (
	// IDDeterministic derives the ID from the element's text: the hex form
	// of SHA-256(text). This is the default.
	//
	// Deterministic IDs are deliberately NOT unique: two elements with
	// identical text get identical IDs, across documents and across runs.
	// That makes them good deduplication keys and bad primary keys. Callers
	// needing primary-key semantics must use IDUnique.
	IDDeterministic IDMode = iota

	// IDUnique generates a random UUID with no relation to the text,
	// practically unique across elements and invocations.
	IDUnique
)

// String returns a human-readable representation of the ID mode.
func (m IDMode) String() string {
	switch m {
	case IDDeterministic:
		return "deterministic"
	case IDUnique:
		return "unique"
	default:
		return "unknown"
	}
}

// DeterministicID returns the deterministic content-hash ID for text: the
// lowercase hex encoding of its SHA-256 digest. Identical text always yields
// an identical ID (see IDDeterministic for the trade-off).
func DeterministicID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// UniqueID returns a freshly generated random UUID string.
func UniqueID() string {
	return uuid.NewString()
}

// assignID applies the identity policy. Called exactly once, from
// construction; IDs are never assigned lazily.
func assignID(mode IDMode, text string) string {
	if mode == IDUnique {
		return UniqueID()
	}
	return DeterministicID(text)
}
