package app

import (
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

// safe runs fn and turns a panic into an ErrPanic error.
func safe(fn func() error) (err error) {
	defer errors.Recover(&err)
	return fn()
}

// subcall runs fn in a nested cache wrap of db. Writes are kept only if fn
// returns without an error or a panic.
func subcall(db htlc.KVStore, fn func(htlc.KVStore) error) error {
	cdb, ok := db.(htlc.CacheableKVStore)
	if !ok {
		return safe(func() error { return fn(db) })
	}
	cache := cdb.CacheWrap()
	if err := safe(func() error { return fn(cache) }); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
