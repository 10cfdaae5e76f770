package escrow

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// NativeLedger moves native value between accounts of the host ledger.
type NativeLedger interface {
	Transfer(ctx context.Context, db htlc.KVStore, from, to htlc.Address, amount uint64) error
}

// TokenLedger is the fungible token ledger used by token escrows.
type TokenLedger interface {
	// Transfer moves amount of token from the balance of the executing
	// account to the recipient.
	Transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error

	// TransferFrom moves amount of token owned by from to the recipient,
	// spending the allowance granted to the executing spender.
	TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error
}

// pay sends amount from the escrow account to the recipient over the rail of
// the escrow.
func (c *Controller) pay(ctx context.Context, db htlc.KVStore, addr htlc.Address, e *Escrow, to htlc.Address, amount uint64) error {
	switch e.AssetKind {
	case AssetNative:
		return c.payNative(ctx, db, addr, to, amount)
	case AssetToken:
		if err := c.tokens.Transfer(ctx, db, e.Token, addr, to, amount); err != nil {
			return errors.Wrapf(ErrTokenTransferFailed, "pay %d to %s: %s", amount, to, err)
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "unknown asset kind %d", int32(e.AssetKind))
	}
}

func (c *Controller) payNative(ctx context.Context, db htlc.KVStore, addr, to htlc.Address, amount uint64) error {
	if err := c.native.Transfer(ctx, db, addr, to, amount); err != nil {
		return errors.Wrapf(ErrNativeTransferFailed, "pay %d to %s: %s", amount, to, err)
	}
	return nil
}
