package cash

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/orm"
)

// Controller is the functionality needed by the host ledger to move native
// value between accounts.
type Controller interface {
	Balance(htlc.ReadOnlyKVStore, htlc.Address) (uint64, error)
	MoveCoins(htlc.KVStore, htlc.Address, htlc.Address, uint64) error
	IssueCoins(htlc.KVStore, htlc.Address, uint64) error
}

// BaseController is a simple implementation of Controller.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the native balance of given account. Unknown accounts have
// zero balance.
func (c BaseController) Balance(db htlc.ReadOnlyKVStore, addr htlc.Address) (uint64, error) {
	w, err := c.wallet(db, addr)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db htlc.KVStore, src, dest htlc.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", sender.Balance, amount)
	}
	sender.Balance -= amount
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "cannot save sender")
	}

	// the sender is saved first so that a transfer to self is handled
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance+amount < recipient.Balance {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	recipient.Balance += amount
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "cannot save recipient")
	}
	return nil
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c BaseController) IssueCoins(db htlc.KVStore, dest htlc.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if w.Balance+amount < w.Balance {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	w.Balance += amount
	return c.bucket.Put(db, dest, w)
}

func (c BaseController) wallet(db htlc.ReadOnlyKVStore, addr htlc.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &htlc.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}
