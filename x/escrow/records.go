package escrow

import (
	"github.com/iov-one/htlc"
)

// SecretRevealedRecord discloses the secret of a claimed escrow. A
// counterpart watching this ledger learns the preimage from it.
type SecretRevealedRecord struct {
	Escrow htlc.Address `json:"escrow"`
	Secret []byte       `json:"secret"`
}

// RecordType implements htlc.Record.
func (SecretRevealedRecord) RecordType() string { return "escrow/secret_revealed" }

// ClaimedRecord is emitted when the locked amount was paid to the
// beneficiary.
type ClaimedRecord struct {
	Escrow    htlc.Address `json:"escrow"`
	To        htlc.Address `json:"to"`
	Amount    uint64       `json:"amount"`
	AssetKind AssetKind    `json:"asset_kind"`
}

// RecordType implements htlc.Record.
func (ClaimedRecord) RecordType() string { return "escrow/claimed" }

// RefundedRecord is emitted when the locked amount was returned to the
// initiator.
type RefundedRecord struct {
	Escrow    htlc.Address `json:"escrow"`
	To        htlc.Address `json:"to"`
	Amount    uint64       `json:"amount"`
	AssetKind AssetKind    `json:"asset_kind"`
}

// RecordType implements htlc.Record.
func (RefundedRecord) RecordType() string { return "escrow/refunded" }
