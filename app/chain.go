package app

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/cash"
	"github.com/iov-one/htlc/x/escrow"
	"github.com/iov-one/htlc/x/factory"
	"github.com/iov-one/htlc/x/token"
	"github.com/tendermint/tendermint/libs/log"
)

var heightKey = []byte("_app:height")

// CallFunc is the body of a call. It must use only the given store.
type CallFunc func(ctx context.Context, db htlc.KVStore) error

// Chain is the host ledger. All methods are safe for concurrent use, calls
// are executed one at a time.
type Chain struct {
	mu     sync.Mutex
	logger log.Logger
	store  *CommitStore

	// published contains records of all committed calls
	published []htlc.Record

	Cash      cash.BaseController
	Tokens    *token.Controller
	Escrows   *escrow.Controller
	Factories *factory.Controller
	Deployer  *Deployer
}

// NewChain returns a host ledger operating on given store. It panics if the
// store cannot be loaded.
func NewChain(store htlc.CommitKVStore, logger log.Logger) *Chain {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	c := &Chain{
		logger: logger.With("module", "chain"),
		store:  NewCommitStore(store),
		Cash:   cash.NewController(cash.NewBucket()),
		Tokens: token.NewController(),
	}
	invoker := NewTokenInvoker(c.Tokens)
	c.Deployer = NewDeployer(c.Cash)
	c.Escrows = escrow.NewController(NewNativeLedger(c.Cash), invoker)
	c.Factories = factory.NewController(c.Deployer, invoker)

	c.Deployer.Register(escrow.NewTemplate(c.Escrows))
	c.Deployer.Register(factory.NewTemplate(c.Factories))
	c.Deployer.Register(token.NewTemplate(c.Tokens))
	return c
}

// Exec runs fn as a single call issued by caller to callee. Value is moved
// from caller to callee before fn runs. All writes and records of the call
// are kept only if it succeeds. The records of a successful call are
// returned.
func (c *Chain) Exec(caller, callee htlc.Address, value uint64, fn CallFunc) ([]htlc.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := caller.Validate(); err != nil {
		return nil, errors.Wrap(err, "caller")
	}
	deliver := c.store.DeliverStore()
	height, err := loadHeight(deliver)
	if err != nil {
		return nil, err
	}

	var records htlc.RecordBuffer
	logger := c.logger.With("caller", caller, "height", height)
	ctx := htlc.WithHeight(context.Background(), height)
	ctx = htlc.WithCaller(ctx, caller)
	ctx = htlc.WithRecordSink(ctx, &records)
	ctx = htlc.WithLogger(ctx, logger)

	db := deliver.CacheWrap()
	err = safe(func() error {
		if value > 0 {
			if err := callee.Validate(); err != nil {
				return errors.Wrap(err, "callee")
			}
			if err := c.Cash.MoveCoins(db, caller, callee, value); err != nil {
				return errors.Wrap(err, "attached value")
			}
		}
		return fn(ctx, db)
	})
	if err != nil {
		db.Discard()
		code, msg := errors.Info(err, false)
		logger.Info("call reverted", "code", code, "log", msg)
		return nil, err
	}
	if err := db.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write call state")
	}
	c.published = append(c.published, records.Records()...)
	logger.Debug("call committed", "records", len(records.Records()))
	return records.Records(), nil
}

// Query runs fn against the current state with the current height and no
// caller. Nothing fn writes is kept.
func (c *Chain) Query(fn CallFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deliver := c.store.DeliverStore()
	height, err := loadHeight(deliver)
	if err != nil {
		return err
	}
	ctx := htlc.WithHeight(context.Background(), height)
	ctx = htlc.WithLogger(ctx, c.logger)
	db := deliver.CacheWrap()
	defer db.Discard()
	return safe(func() error { return fn(ctx, db) })
}

// Height returns the height of the block being built.
func (c *Chain) Height() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return loadHeight(c.store.DeliverStore())
}

// Tick advances the height by given number of blocks and commits the state.
func (c *Chain) Tick(blocks uint64) (htlc.CommitID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deliver := c.store.DeliverStore()
	height, err := loadHeight(deliver)
	if err != nil {
		return htlc.CommitID{}, err
	}
	next := htlc.ExpiryHeight(height, blocks)
	if err := saveHeight(deliver, next); err != nil {
		return htlc.CommitID{}, err
	}
	id, err := c.store.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	c.logger.Info("block committed", "height", next, "version", id.Version)
	return id, nil
}

// Commit persists the current state without changing the height.
func (c *Chain) Commit() (htlc.CommitID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Commit()
}

// CommitInfo returns the last committed version.
func (c *Chain) CommitInfo() htlc.CommitID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.CommitInfo()
}

// Records returns all records published since the chain was loaded.
func (c *Chain) Records() []htlc.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]htlc.Record(nil), c.published...)
}

func loadHeight(db htlc.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(heightKey)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if len(raw) != 8 {
		return 0, nil
	}
	return int64(binary.BigEndian.Uint64(raw)), nil
}

func saveHeight(db htlc.KVStore, height int64) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(height))
	return db.Set(heightKey, raw)
}
