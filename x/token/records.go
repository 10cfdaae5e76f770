package token

import (
	"github.com/iov-one/htlc"
)

// TransferRecord is emitted for every balance movement. Minted tokens are
// transferred from the nil address.
type TransferRecord struct {
	Token  htlc.Address `json:"token"`
	From   htlc.Address `json:"from"`
	To     htlc.Address `json:"to"`
	Amount uint64       `json:"amount"`
}

// RecordType implements htlc.Record.
func (TransferRecord) RecordType() string { return "token/transfer" }

// ApprovalRecord is emitted whenever an allowance is set.
type ApprovalRecord struct {
	Token   htlc.Address `json:"token"`
	Owner   htlc.Address `json:"owner"`
	Spender htlc.Address `json:"spender"`
	Amount  uint64       `json:"amount"`
}

// RecordType implements htlc.Record.
func (ApprovalRecord) RecordType() string { return "token/approval" }
