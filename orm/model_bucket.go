package orm

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/htlc"
	"github.com/iov-one/htlc/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores models of a single type under a common key prefix.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db htlc.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db htlc.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database.
	Put(db htlc.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db htlc.KVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance that only accepts models of
// the same type as given one. It panics if the name is not a valid bucket
// name.
func NewModelBucket(name string, m Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket name: " + name)
	}
	return &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(m),
	}
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, 0, len(mb.prefix)+len(key))
	out = append(out, mb.prefix...)
	return append(out, key...)
}

func (mb *modelBucket) One(db htlc.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != mb.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot decode %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db htlc.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) Put(db htlc.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %T in a %s bucket", m, mb.model)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode %T: %s", m, err)
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db htlc.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return db.Delete(mb.dbKey(key))
}
