package factory

import (
	"github.com/iov-one/htlc"
)

// EscrowCreatedRecord carries all economic parameters of a new escrow. A
// counterpart uses it to check the escrow before locking its own side.
type EscrowCreatedRecord struct {
	Factory         htlc.Address `json:"factory"`
	Escrow          htlc.Address `json:"escrow"`
	Initiator       htlc.Address `json:"initiator"`
	Beneficiary     htlc.Address `json:"beneficiary"`
	Expiry          int64        `json:"expiry"`
	LockedAmount    uint64       `json:"locked_amount"`
	ResolverDeposit uint64       `json:"resolver_deposit"`
	HashedSecret    []byte       `json:"hashed_secret"`
	IsToken         bool         `json:"is_token"`
	Token           htlc.Address `json:"token,omitempty"`
}

// RecordType implements htlc.Record.
func (EscrowCreatedRecord) RecordType() string { return "factory/escrow_created" }
