package escrow

import (
	"golang.org/x/crypto/sha3"
)

// HashSize is the length of a secret commitment.
const HashSize = 32

// Hash returns the keccak-256 commitment of given secret.
func Hash(secret []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(secret)
	return h.Sum(nil)
}
