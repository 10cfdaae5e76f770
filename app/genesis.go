package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/x/cash"
	"github.com/iov-one/htlc/x/token"
)

// Genesis is the content of a genesis file.
type Genesis struct {
	ChainID       string       `json:"chain_id"`
	InitialHeight int64        `json:"initial_height"`
	AppState      htlc.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read genesis file: %s", err)
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot parse genesis file: %s", err)
	}
	if gen.InitialHeight < 0 {
		return nil, errors.Wrap(errors.ErrInput, "negative initial height")
	}
	return &gen, nil
}

// DefaultInitializer loads the state of all extensions that accept genesis
// options.
func DefaultInitializer() htlc.Initializer {
	return htlc.ChainInitializers(cash.Initializer{}, token.Initializer{})
}

// InitChain loads the genesis state and commits it as the first version. It
// fails if the chain already holds committed state.
func (c *Chain) InitChain(gen *Genesis, init htlc.Initializer) (htlc.CommitID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if info := c.store.CommitInfo(); info.Version != 0 {
		return htlc.CommitID{}, errors.Wrapf(errors.ErrState, "chain already initialized at version %d", info.Version)
	}
	deliver := c.store.DeliverStore()
	db := deliver.CacheWrap()
	err := safe(func() error {
		if err := init.FromGenesis(gen.AppState, db); err != nil {
			return err
		}
		return saveHeight(db, gen.InitialHeight)
	})
	if err != nil {
		db.Discard()
		return htlc.CommitID{}, errors.Wrap(err, "genesis")
	}
	if err := db.Write(); err != nil {
		return htlc.CommitID{}, err
	}
	id, err := c.store.Commit()
	if err != nil {
		return id, err
	}
	c.logger.Info("chain initialized", "chain_id", gen.ChainID, "height", gen.InitialHeight, "hash", id.Hash)
	return id, nil
}
