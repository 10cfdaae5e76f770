package cash

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
type GenesisAccount struct {
	Address htlc.Address `json:"address"`
	Balance uint64       `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ htlc.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts htlc.Options, kv htlc.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, acct := range accts {
		if err := ctrl.IssueCoins(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
