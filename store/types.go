package store

import "github.com/iov-one/htlc"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = htlc.ReadOnlyKVStore
type SetDeleter = htlc.SetDeleter
type KVStore = htlc.KVStore
type CacheableKVStore = htlc.CacheableKVStore
type KVCacheWrap = htlc.KVCacheWrap
type CommitKVStore = htlc.CommitKVStore
type CommitID = htlc.CommitID

// Batch can write multiple ops atomically to an underlying KVStore
type Batch interface {
	SetDeleter
	Write() error
}
