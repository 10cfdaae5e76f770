package app

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/x/cash"
	"github.com/iov-one/htlc/x/escrow"
	"github.com/iov-one/htlc/x/factory"
)

// NativeLedger moves native value using the cash extension.
type NativeLedger struct {
	cash cash.Controller
}

var _ escrow.NativeLedger = NativeLedger{}

// NewNativeLedger returns a native ledger on top of given controller.
func NewNativeLedger(ctrl cash.Controller) NativeLedger {
	return NativeLedger{cash: ctrl}
}

// Transfer implements escrow.NativeLedger.
func (l NativeLedger) Transfer(ctx context.Context, db htlc.KVStore, from, to htlc.Address, amount uint64) error {
	return l.cash.MoveCoins(db, from, to, amount)
}

// TokenLedger is the part of a token ledger reachable by other contracts.
type TokenLedger interface {
	Transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error
	TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error
}

// TokenInvoker executes token ledger operations as synchronous sub-calls. The
// executing account becomes the caller of the sub-call, and every sub-call
// runs in its own savepoint.
type TokenInvoker struct {
	ledger TokenLedger
}

var (
	_ escrow.TokenLedger   = TokenInvoker{}
	_ factory.TokenSpender = TokenInvoker{}
)

// NewTokenInvoker returns an invoker calling into given ledger.
func NewTokenInvoker(ledger TokenLedger) TokenInvoker {
	return TokenInvoker{ledger: ledger}
}

// Transfer implements escrow.TokenLedger.
func (t TokenInvoker) Transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error {
	ctx = htlc.WithCaller(ctx, from)
	return subcall(db, func(db htlc.KVStore) error {
		return t.ledger.Transfer(ctx, db, token, from, to, amount)
	})
}

// TransferFrom implements escrow.TokenLedger.
func (t TokenInvoker) TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error {
	ctx = htlc.WithCaller(ctx, spender)
	return subcall(db, func(db htlc.KVStore) error {
		return t.ledger.TransferFrom(ctx, db, token, spender, from, to, amount)
	})
}
