package htlc

import (
	"context"

	"golang.org/x/crypto/sha3"
)

// Template is code that the host ledger can instantiate at a new address.
// Construct initializes the state of a fresh instance. The value is already
// credited to addr when Construct is called, and the caller in the context is
// the account that requested the instantiation.
type Template interface {
	ID() []byte
	Construct(ctx context.Context, db KVStore, addr Address, args []byte, value uint64) error
}

// Deployer instantiates templates at deterministic addresses. It is provided
// by the host ledger.
type Deployer interface {
	// Instantiate creates a new instance of the template, moving value from
	// the account given as from to the new instance. When salt is not
	// empty the resulting address depends only on the template, the
	// arguments and the salt.
	Instantiate(ctx context.Context, db KVStore, from Address, templateID, args []byte, value uint64, salt []byte) (Address, error)
}

// NewTemplateID returns the identifier of the template with given name. It is
// the keccak-256 digest of the name.
func NewTemplateID(name string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	return h.Sum(nil)
}
