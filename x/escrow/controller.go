package escrow

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// Controller implements the escrow state machine.
type Controller struct {
	bucket orm.ModelBucket
	native NativeLedger
	tokens TokenLedger
}

// NewController returns a controller paying over given ledgers.
func NewController(native NativeLedger, tokens TokenLedger) *Controller {
	return &Controller{
		bucket: NewBucket(),
		native: native,
		tokens: tokens,
	}
}

// Create initializes a new escrow at given address. The value attached to
// the constructor call must already be credited to the escrow account.
//
// A native escrow locks everything above the resolver deposit. A token escrow
// accepts exactly the resolver deposit and locks the amount declared in the
// parameters, which must be transferred to the escrow separately.
func (c *Controller) Create(ctx context.Context, db htlc.KVStore, addr htlc.Address, p *Params, value uint64) (*Escrow, error) {
	now, err := height(ctx)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "escrow address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "escrow %s", addr)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	initiator := p.Initiator
	if len(initiator) == 0 {
		caller, ok := htlc.GetCaller(ctx)
		if !ok {
			return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
		}
		initiator = caller
	}
	if p.ResolverDeposit == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "resolver deposit required")
	}

	e := &Escrow{
		Metadata:        &htlc.Metadata{Schema: 1},
		Initiator:       initiator,
		Beneficiary:     p.Beneficiary,
		HashedSecret:    p.HashedSecret,
		Expiry:          htlc.ExpiryHeight(now, p.ExpiryOffset),
		ResolverDeposit: p.ResolverDeposit,
		AssetKind:       p.AssetKind,
	}
	switch p.AssetKind {
	case AssetNative:
		if value <= p.ResolverDeposit {
			return nil, errors.Wrapf(errors.ErrInsufficientAmount,
				"value %d must exceed resolver deposit %d", value, p.ResolverDeposit)
		}
		locked, ok := sub(value, p.ResolverDeposit)
		if !ok || locked == 0 {
			return nil, errors.Wrap(errors.ErrAmount, "zero lock")
		}
		e.LockedAmount = locked
	case AssetToken:
		if value != p.ResolverDeposit {
			return nil, errors.Wrapf(errors.ErrAmount,
				"value %d must equal resolver deposit %d", value, p.ResolverDeposit)
		}
		if p.Amount == 0 {
			return nil, errors.Wrap(errors.ErrAmount, "zero amount")
		}
		e.LockedAmount = p.Amount
		e.Token = p.Token
	default:
		return nil, p.AssetKind.Validate()
	}

	if err := c.bucket.Put(db, addr, e); err != nil {
		return nil, err
	}
	htlc.GetLogger(ctx).Debug("escrow created",
		"escrow", addr,
		"asset", e.AssetKind,
		"locked", e.LockedAmount,
		"deposit", e.ResolverDeposit,
		"expiry", e.Expiry)
	return e, nil
}

// Escrow returns the stored state of an escrow.
func (c *Controller) Escrow(db htlc.ReadOnlyKVStore, addr htlc.Address) (*Escrow, error) {
	var e Escrow
	if err := c.bucket.One(db, addr, &e); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	return &e, nil
}

// Claim pays the locked amount to the beneficiary and the resolver deposit to
// the caller. Preconditions are checked in a fixed order: finalization,
// expiry and finally the secret.
func (c *Controller) Claim(ctx context.Context, db htlc.KVStore, addr htlc.Address, secret []byte) error {
	now, err := height(ctx)
	if err != nil {
		return err
	}
	caller, ok := htlc.GetCaller(ctx)
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	e, err := c.Escrow(db, addr)
	if err != nil {
		return err
	}
	if e.Finalized() {
		return errors.Wrapf(ErrAlreadyFinalized, "escrow %s", addr)
	}
	if now >= e.Expiry {
		return errors.Wrapf(errors.ErrExpired, "expired at %d, now %d", e.Expiry, now)
	}
	if !e.VerifySecret(secret) {
		return ErrBadSecret
	}

	err = savepoint(db, func(db htlc.KVStore) error {
		// The flag is persisted before any payment so that a call
		// re-entering this escrow during payment observes it as
		// finalized. Discarding the savepoint reverts the flag.
		e.Claimed = true
		if err := c.bucket.Put(db, addr, e); err != nil {
			return err
		}
		if err := c.pay(ctx, db, addr, e, e.Beneficiary, e.LockedAmount); err != nil {
			return err
		}
		return c.payNative(ctx, db, addr, caller, e.ResolverDeposit)
	})
	if err != nil {
		return err
	}

	htlc.Emit(ctx, SecretRevealedRecord{Escrow: addr, Secret: secret})
	htlc.Emit(ctx, ClaimedRecord{
		Escrow:    addr,
		To:        e.Beneficiary,
		Amount:    e.LockedAmount,
		AssetKind: e.AssetKind,
	})
	htlc.GetLogger(ctx).Debug("escrow claimed", "escrow", addr, "resolver", caller)
	return nil
}

// Refund returns the locked amount to the initiator and pays the resolver
// deposit to the caller. It is allowed only once the expiry height is
// reached.
func (c *Controller) Refund(ctx context.Context, db htlc.KVStore, addr htlc.Address) error {
	now, err := height(ctx)
	if err != nil {
		return err
	}
	caller, ok := htlc.GetCaller(ctx)
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	e, err := c.Escrow(db, addr)
	if err != nil {
		return err
	}
	if e.Finalized() {
		return errors.Wrapf(ErrAlreadyFinalized, "escrow %s", addr)
	}
	if now < e.Expiry {
		return errors.Wrapf(ErrNotExpired, "expires at %d, now %d", e.Expiry, now)
	}

	err = savepoint(db, func(db htlc.KVStore) error {
		e.Refunded = true
		if err := c.bucket.Put(db, addr, e); err != nil {
			return err
		}
		if err := c.pay(ctx, db, addr, e, e.Initiator, e.LockedAmount); err != nil {
			return err
		}
		return c.payNative(ctx, db, addr, caller, e.ResolverDeposit)
	})
	if err != nil {
		return err
	}

	htlc.Emit(ctx, RefundedRecord{
		Escrow:    addr,
		To:        e.Initiator,
		Amount:    e.LockedAmount,
		AssetKind: e.AssetKind,
	})
	htlc.GetLogger(ctx).Debug("escrow refunded", "escrow", addr, "resolver", caller)
	return nil
}

// Info is a snapshot of an escrow together with the current height.
type Info struct {
	Escrow
	Now int64 `json:"now"`
}

// Info returns a snapshot of the escrow. It never modifies the state.
func (c *Controller) Info(ctx context.Context, db htlc.ReadOnlyKVStore, addr htlc.Address) (*Info, error) {
	now, err := height(ctx)
	if err != nil {
		return nil, err
	}
	e, err := c.Escrow(db, addr)
	if err != nil {
		return nil, err
	}
	return &Info{Escrow: *e, Now: now}, nil
}

// VerifySecret returns true if the candidate matches the commitment of the
// escrow.
func (c *Controller) VerifySecret(db htlc.ReadOnlyKVStore, addr htlc.Address, candidate []byte) (bool, error) {
	e, err := c.Escrow(db, addr)
	if err != nil {
		return false, err
	}
	return e.VerifySecret(candidate), nil
}

// savepoint runs fn on a cache wrap of db. Changes are written only if fn
// succeeds.
func savepoint(db htlc.KVStore, fn func(htlc.KVStore) error) error {
	cdb, ok := db.(htlc.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cdb.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}

func height(ctx context.Context) (int64, error) {
	h, ok := htlc.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrState, "missing block height")
	}
	return h, nil
}

// sub returns a-b and false if the result would underflow.
func sub(a, b uint64) (uint64, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
