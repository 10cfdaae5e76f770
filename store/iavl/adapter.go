/*
Package iavl provides a persistent CommitKVStore backed by a versioned
merkle tree. Every Commit saves a new version of the tree on disk and returns
its root hash.
*/
package iavl

import (
	"github.com/iov-one/htlc/errors"
	"github.com/iov-one/htlc/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// cacheSize is the number of nodes of the tree kept in memory.
const cacheSize = 10000

// CommitStore manages a iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing. It panics if the
// database cannot be opened or loaded.
func NewCommitStore(dir, name string) CommitStore {
	db, err := dbm.NewGoLevelDB(name, dir)
	if err != nil {
		panic(err)
	}
	commit, err := newCommitStore(db)
	if err != nil {
		panic(err)
	}
	return commit
}

// NewMemCommitStore creates a new store that keeps all versions in memory.
func NewMemCommitStore() CommitStore {
	commit, err := newCommitStore(dbm.NewMemDB())
	if err != nil {
		panic(err)
	}
	return commit
}

func newCommitStore(db dbm.DB) (CommitStore, error) {
	tree := iavl.NewMutableTree(db, cacheSize)
	if _, err := tree.Load(); err != nil {
		return CommitStore{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return CommitStore{tree: tree, db: db}, nil
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.Get(key)
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// Close releases the underlying database.
func (s CommitStore) Close() {
	s.db.Close()
}

// Adapter returns a wrapper around the working tree. All writes to the
// adapter become persistent with the next Commit.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// CacheWrap wraps the working tree with a btree cache
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// adapter converts the working tree into a CacheableKVStore
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

// Has checks if a key exists. Panics on nil key.
func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

// Set adds a new value
func (a adapter) Set(key, value []byte) error {
	a.tree.Set(key, value)
	return nil
}

// Delete removes from the tree
func (a adapter) Delete(key []byte) error {
	a.tree.Remove(key)
	return nil
}

// CacheWrap wraps us once again, with btree
func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(a, store.NewNonAtomicBatch(a), nil)
}
