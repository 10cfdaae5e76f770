package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/htlc"
)

// ParseAddress takes an address in a human readable format and returns its
// binary representation. This function is a test helper that is using
// htlc.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) htlc.Address {
	t.Helper()

	addr, err := htlc.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// NewCondition returns a condition with random content. Each call returns a
// different condition, so that addresses in tests never collide.
func NewCondition() htlc.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return htlc.NewCondition("test", "account", data)
}

// NewAddress returns the address of a new random condition.
func NewAddress() htlc.Address {
	return NewCondition().Address()
}

// SequenceID returns an 8 byte big endian representation of given number,
// the same format as the orm sequence produces.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(n)
		n >>= 8
	}
	return b
}
