package app

import (
	"github.com/iov-one/htlc"
)

// CommitStore handles loading from a CommitKVStore, maintaining a cache wrap
// for the current block and returning useful state info.
type CommitStore struct {
	committed htlc.CommitKVStore
	deliver   htlc.KVCacheWrap
}

// NewCommitStore loads the CommitKVStore from disk or panics. It sets up the
// deliver cache.
func NewCommitStore(store htlc.CommitKVStore) *CommitStore {
	if err := store.LoadLatestVersion(); err != nil {
		panic(err)
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}
}

// CommitInfo returns the current version and hash.
func (cs *CommitStore) CommitInfo() htlc.CommitID {
	return cs.committed.LatestVersion()
}

// Commit will flush deliver to the underlying store and commit it
// to disk. It then regenerates a new deliver cache.
func (cs *CommitStore) Commit() (htlc.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return htlc.CommitID{}, err
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// DeliverStore returns the state of the current block.
func (cs *CommitStore) DeliverStore() htlc.CacheableKVStore {
	return cs.deliver
}
