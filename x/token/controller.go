package token

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// Controller implements the token ledger operations. Every method that
// changes the state takes the account executing the operation explicitly.
// Callers are expected to run mutating operations in a savepoint, as a failed
// operation may leave partial writes behind.
type Controller struct {
	tokens     orm.ModelBucket
	balances   orm.ModelBucket
	allowances orm.ModelBucket
}

// NewController returns a controller operating on the default buckets.
func NewController() *Controller {
	return &Controller{
		tokens:     NewTokenBucket(),
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
	}
}

// Create initializes a new token at given address. The owner receives the
// whole initial supply.
func (c *Controller) Create(ctx context.Context, db htlc.KVStore, addr, owner htlc.Address, p *CreateParams) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "token address")
	}
	switch err := c.tokens.Has(db, addr); {
	case err == nil:
		return errors.Wrapf(errors.ErrDuplicate, "token %s", addr)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	t := &Token{
		Metadata: &htlc.Metadata{Schema: 1},
		Owner:    owner,
		Name:     p.Name,
		Symbol:   p.Symbol,
		Decimals: p.Decimals,
	}
	if err := c.tokens.Put(db, addr, t); err != nil {
		return errors.Wrap(err, "cannot save token")
	}
	if p.InitialSupply > 0 {
		if err := c.mint(ctx, db, addr, t, owner, p.InitialSupply); err != nil {
			return err
		}
	}
	htlc.GetLogger(ctx).Debug("token created", "token", addr, "owner", owner, "supply", p.InitialSupply)
	return nil
}

// Info returns the configuration of a token.
func (c *Controller) Info(db htlc.ReadOnlyKVStore, token htlc.Address) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, token, &t); err != nil {
		return nil, errors.Wrapf(err, "token %s", token)
	}
	return &t, nil
}

// TotalSupply returns the amount of tokens in circulation.
func (c *Controller) TotalSupply(db htlc.ReadOnlyKVStore, token htlc.Address) (uint64, error) {
	t, err := c.Info(db, token)
	if err != nil {
		return 0, err
	}
	return t.TotalSupply, nil
}

// BalanceOf returns the balance of given holder. Unknown holders have zero
// balance.
func (c *Controller) BalanceOf(db htlc.ReadOnlyKVStore, token, holder htlc.Address) (uint64, error) {
	if _, err := c.Info(db, token); err != nil {
		return 0, err
	}
	return c.amount(db, c.balances, balanceKey(token, holder))
}

// Allowance returns how much spender may still transfer on behalf of owner.
func (c *Controller) Allowance(db htlc.ReadOnlyKVStore, token, owner, spender htlc.Address) (uint64, error) {
	if _, err := c.Info(db, token); err != nil {
		return 0, err
	}
	return c.amount(db, c.allowances, allowanceKey(token, owner, spender))
}

// Approve sets the allowance of spender over the tokens of owner. Any
// previous allowance is replaced.
func (c *Controller) Approve(ctx context.Context, db htlc.KVStore, token, owner, spender htlc.Address, amount uint64) error {
	if _, err := c.Info(db, token); err != nil {
		return err
	}
	if err := spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	if err := c.setAmount(db, c.allowances, allowanceKey(token, owner, spender), amount); err != nil {
		return err
	}
	htlc.Emit(ctx, ApprovalRecord{Token: token, Owner: owner, Spender: spender, Amount: amount})
	return nil
}

// Transfer moves amount of tokens from the executing account to the
// recipient.
func (c *Controller) Transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error {
	if _, err := c.Info(db, token); err != nil {
		return err
	}
	return c.transfer(ctx, db, token, from, to, amount)
}

// TransferFrom moves amount of tokens owned by from to the recipient, using
// the allowance granted to the executing spender. The allowance is checked
// before the balance.
func (c *Controller) TransferFrom(ctx context.Context, db htlc.KVStore, token, spender, from, to htlc.Address, amount uint64) error {
	if _, err := c.Info(db, token); err != nil {
		return err
	}
	key := allowanceKey(token, from, spender)
	allowed, err := c.amount(db, c.allowances, key)
	if err != nil {
		return err
	}
	if allowed < amount {
		return errors.Wrapf(ErrInsufficientAllowance, "allowance %d, want %d", allowed, amount)
	}
	if err := c.transfer(ctx, db, token, from, to, amount); err != nil {
		return err
	}
	return c.setAmount(db, c.allowances, key, allowed-amount)
}

// Mint creates new tokens for the recipient. Only the token owner is allowed
// to mint.
func (c *Controller) Mint(ctx context.Context, db htlc.KVStore, token, minter, to htlc.Address, amount uint64) error {
	t, err := c.Info(db, token)
	if err != nil {
		return err
	}
	if !t.Owner.Equals(minter) {
		return errors.Wrap(errors.ErrUnauthorized, "only the owner can mint")
	}
	return c.mint(ctx, db, token, t, to, amount)
}

func (c *Controller) mint(ctx context.Context, db htlc.KVStore, addr htlc.Address, t *Token, to htlc.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if t.TotalSupply+amount < t.TotalSupply {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	key := balanceKey(addr, to)
	bal, err := c.amount(db, c.balances, key)
	if err != nil {
		return err
	}
	t.TotalSupply += amount
	if err := c.tokens.Put(db, addr, t); err != nil {
		return errors.Wrap(err, "cannot save token")
	}
	// balance cannot overflow when the total supply does not
	if err := c.setAmount(db, c.balances, key, bal+amount); err != nil {
		return err
	}
	htlc.Emit(ctx, TransferRecord{Token: addr, To: to, Amount: amount})
	return nil
}

func (c *Controller) transfer(ctx context.Context, db htlc.KVStore, token, from, to htlc.Address, amount uint64) error {
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if amount == 0 {
		htlc.Emit(ctx, TransferRecord{Token: token, From: from, To: to})
		return nil
	}

	fromKey := balanceKey(token, from)
	fromBal, err := c.amount(db, c.balances, fromKey)
	if err != nil {
		return err
	}
	if fromBal < amount {
		return errors.Wrapf(ErrInsufficientBalance, "balance %d, want %d", fromBal, amount)
	}
	if err := c.setAmount(db, c.balances, fromKey, fromBal-amount); err != nil {
		return err
	}

	// read after the debit so that a transfer to self is a no-op
	toKey := balanceKey(token, to)
	toBal, err := c.amount(db, c.balances, toKey)
	if err != nil {
		return err
	}
	if toBal+amount < toBal {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	if err := c.setAmount(db, c.balances, toKey, toBal+amount); err != nil {
		return err
	}
	htlc.Emit(ctx, TransferRecord{Token: token, From: from, To: to, Amount: amount})
	return nil
}

func (c *Controller) amount(db htlc.ReadOnlyKVStore, b orm.ModelBucket, key []byte) (uint64, error) {
	var a Amount
	switch err := b.One(db, key, &a); {
	case err == nil:
		return a.Value, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c *Controller) setAmount(db htlc.KVStore, b orm.ModelBucket, key []byte, value uint64) error {
	a := &Amount{Metadata: &htlc.Metadata{Schema: 1}, Value: value}
	if err := b.Put(db, key, a); err != nil {
		return errors.Wrap(err, "cannot save amount")
	}
	return nil
}
