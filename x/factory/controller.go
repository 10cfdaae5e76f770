package factory

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
	"github.com/iov-one/htlc/x/escrow"
)

// TokenSpender pulls tokens using an allowance.
type TokenSpender interface {
	TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error
}

// NativeRequest describes a new native escrow. The locked amount is the
// value attached to the call minus the resolver deposit.
type NativeRequest struct {
	Beneficiary     htlc.Address
	HashedSecret    []byte
	ExpiryOffset    uint64
	ResolverDeposit uint64
	Salt            []byte
}

// TokenRequest describes a new token escrow. The value attached to the call
// must be exactly the resolver deposit.
type TokenRequest struct {
	Token           htlc.Address
	Amount          uint64
	Beneficiary     htlc.Address
	HashedSecret    []byte
	ExpiryOffset    uint64
	ResolverDeposit uint64
	Salt            []byte
}

// Controller implements the factory operations.
type Controller struct {
	bucket   orm.ModelBucket
	last     orm.ModelBucket
	deployer htlc.Deployer
	tokens   TokenSpender
}

// NewController returns a controller instantiating escrows with given
// deployer.
func NewController(deployer htlc.Deployer, tokens TokenSpender) *Controller {
	return &Controller{
		bucket:   NewBucket(),
		last:     NewLastEscrowBucket(),
		deployer: deployer,
		tokens:   tokens,
	}
}

// Create initializes a new factory at given address.
func (c *Controller) Create(ctx context.Context, db htlc.KVStore, addr htlc.Address, templateID []byte) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "factory address")
	}
	switch err := c.bucket.Has(db, addr); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "factory %s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	f := &Factory{
		Metadata:   &htlc.Metadata{Schema: 1},
		TemplateID: templateID,
	}
	if err := c.bucket.Put(db, addr, f); err != nil {
		return err
	}
	htlc.GetLogger(ctx).Debug("factory created", "factory", addr)
	return nil
}

// TemplateID returns the identifier of the template the factory deploys.
func (c *Controller) TemplateID(db htlc.ReadOnlyKVStore, factory htlc.Address) ([]byte, error) {
	f, err := c.factory(db, factory)
	if err != nil {
		return nil, err
	}
	return f.TemplateID, nil
}

// LastEscrow returns the address of the most recently created escrow.
// ErrNotFound is returned if the factory did not create any escrow yet.
func (c *Controller) LastEscrow(db htlc.ReadOnlyKVStore, factory htlc.Address) (htlc.Address, error) {
	if _, err := c.factory(db, factory); err != nil {
		return nil, err
	}
	var last LastEscrow
	if err := c.last.One(db, factory, &last); err != nil {
		return nil, errors.Wrap(err, "no escrow created")
	}
	return last.Escrow, nil
}

// CreateNativeEscrow instantiates a native escrow holding the whole value
// attached to the call.
func (c *Controller) CreateNativeEscrow(ctx context.Context, db htlc.KVStore, factory htlc.Address, req NativeRequest, value uint64) (htlc.Address, error) {
	if req.ResolverDeposit == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "resolver deposit required")
	}
	if value <= req.ResolverDeposit {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"value %d must exceed resolver deposit %d", value, req.ResolverDeposit)
	}
	caller, ok := htlc.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	p := &escrow.Params{
		Initiator:       caller,
		Beneficiary:     req.Beneficiary,
		HashedSecret:    req.HashedSecret,
		ExpiryOffset:    req.ExpiryOffset,
		ResolverDeposit: req.ResolverDeposit,
		AssetKind:       escrow.AssetNative,
	}
	rec := EscrowCreatedRecord{
		Factory:         factory,
		Initiator:       caller,
		Beneficiary:     req.Beneficiary,
		LockedAmount:    value - req.ResolverDeposit,
		ResolverDeposit: req.ResolverDeposit,
		HashedSecret:    req.HashedSecret,
	}
	return c.instantiate(ctx, db, factory, p, value, req.Salt, rec, nil)
}

// CreateTokenEscrow instantiates a token escrow holding the resolver deposit
// and moves amount of tokens from the caller to it. The caller must have
// approved the factory as a spender beforehand.
func (c *Controller) CreateTokenEscrow(ctx context.Context, db htlc.KVStore, factory htlc.Address, req TokenRequest, value uint64) (htlc.Address, error) {
	if req.ResolverDeposit == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "resolver deposit required")
	}
	if value != req.ResolverDeposit {
		return nil, errors.Wrapf(errors.ErrAmount,
			"value %d must equal resolver deposit %d", value, req.ResolverDeposit)
	}
	if req.Amount == 0 {
		return nil, errors.Wrap(errors.ErrAmount, "zero amount")
	}
	caller, ok := htlc.GetCaller(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing caller")
	}
	p := &escrow.Params{
		Initiator:       caller,
		Beneficiary:     req.Beneficiary,
		HashedSecret:    req.HashedSecret,
		ExpiryOffset:    req.ExpiryOffset,
		ResolverDeposit: req.ResolverDeposit,
		AssetKind:       escrow.AssetToken,
		Token:           req.Token,
		Amount:          req.Amount,
	}
	rec := EscrowCreatedRecord{
		Factory:         factory,
		Initiator:       caller,
		Beneficiary:     req.Beneficiary,
		LockedAmount:    req.Amount,
		ResolverDeposit: req.ResolverDeposit,
		HashedSecret:    req.HashedSecret,
		IsToken:         true,
		Token:           req.Token,
	}
	fund := func(ctx context.Context, db htlc.KVStore, addr htlc.Address) error {
		if err := c.tokens.TransferFrom(ctx, db, req.Token, factory, caller, addr, req.Amount); err != nil {
			return errors.Wrap(err, "cannot move tokens into the escrow")
		}
		return nil
	}
	return c.instantiate(ctx, db, factory, p, value, req.Salt, rec, fund)
}

// instantiate deploys an escrow and runs the optional funding step. Both
// happen in a single savepoint.
func (c *Controller) instantiate(
	ctx context.Context,
	db htlc.KVStore,
	factory htlc.Address,
	p *escrow.Params,
	value uint64,
	salt []byte,
	rec EscrowCreatedRecord,
	fund func(context.Context, htlc.KVStore, htlc.Address) error,
) (htlc.Address, error) {
	f, err := c.factory(db, factory)
	if err != nil {
		return nil, err
	}
	now, ok := htlc.GetHeight(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "missing block height")
	}
	args, err := escrow.EncodeParams(p)
	if err != nil {
		return nil, err
	}

	var addr htlc.Address
	err = savepoint(db, func(db htlc.KVStore) error {
		addr, err = c.deployer.Instantiate(ctx, db, factory, f.TemplateID, args, value, salt)
		if err != nil {
			return errors.Wrap(err, "cannot instantiate escrow")
		}
		if fund != nil {
			if err := fund(ctx, db, addr); err != nil {
				return err
			}
		}
		last := &LastEscrow{Metadata: &htlc.Metadata{Schema: 1}, Escrow: addr}
		return c.last.Put(db, factory, last)
	})
	if err != nil {
		return nil, err
	}

	rec.Escrow = addr
	rec.Expiry = htlc.ExpiryHeight(now, p.ExpiryOffset)
	htlc.Emit(ctx, rec)
	htlc.GetLogger(ctx).Debug("escrow instantiated",
		"factory", factory,
		"escrow", addr,
		"token", rec.IsToken,
		"locked", rec.LockedAmount)
	return addr, nil
}

func (c *Controller) factory(db htlc.ReadOnlyKVStore, addr htlc.Address) (*Factory, error) {
	var f Factory
	if err := c.bucket.One(db, addr, &f); err != nil {
		return nil, errors.Wrapf(err, "factory %s", addr)
	}
	return &f, nil
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
