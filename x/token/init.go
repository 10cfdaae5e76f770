package token

import (
	"context"

	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

const optKey = "token"

// GenesisHolder is a balance assigned at genesis.
type GenesisHolder struct {
	Address htlc.Address `json:"address"`
	Amount  uint64       `json:"amount"`
}

// GenesisToken is used to parse the json from genesis file.
type GenesisToken struct {
	Address  htlc.Address    `json:"address"`
	Owner    htlc.Address    `json:"owner"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	Decimals uint32          `json:"decimals"`
	Holders  []GenesisHolder `json:"holders"`
}

// Initializer fulfils the Initializer interface to load tokens from the
// genesis file.
type Initializer struct{}

var _ htlc.Initializer = Initializer{}

// FromGenesis creates all declared tokens and mints the holder balances.
func (Initializer) FromGenesis(opts htlc.Options, kv htlc.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return err
	}
	ctrl := NewController()
	ctx := context.Background()
	for _, t := range tokens {
		p := &CreateParams{Name: t.Name, Symbol: t.Symbol, Decimals: t.Decimals}
		if err := ctrl.Create(ctx, kv, t.Address, t.Owner, p); err != nil {
			return errors.Wrapf(err, "token %s", t.Symbol)
		}
		for _, h := range t.Holders {
			if err := ctrl.Mint(ctx, kv, t.Address, t.Owner, h.Address, h.Amount); err != nil {
				return errors.Wrapf(err, "token %s holder %s", t.Symbol, h.Address)
			}
		}
	}
	return nil
}
