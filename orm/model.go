package orm

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	barter.Persistent
	Validate() error
}

// ModelBucket stores models of a single type under a name prefix.
type ModelBucket interface {
	barter.QueryHandler

	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db barter.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns true if an entity with given primary key exists.
	Has(db barter.ReadOnlyKVStore, key []byte) (bool, error)

	// Put saves given model in the database, overwriting any previous
	// value stored under the same key.
	Put(db barter.KVStore, key []byte, m Model) error

	// Insert saves given model only if no entity with given key exists.
	// It returns ErrDuplicate otherwise.
	Insert(db barter.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db barter.KVStore, key []byte) error

	// ByIndex returns the primary keys of all entities indexed under
	// given value.
	ByIndex(db barter.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)

	// Register registers this bucket and all its indexes for queries.
	Register(name string, r barter.QueryRouter)
}

// ModelBucketOption configures a ModelBucket on creation.
type ModelBucketOption func(*modelBucket)

// WithIndex adds a secondary index to the bucket. Panics if an index with
// that name is already registered.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic(fmt.Sprintf("index %s registered twice", name))
		}
		mb.indexes[name] = newIndex(mb.name, name, indexer, unique, mb.dbKey)
	}
}

// NewModelBucket returns a ModelBucket for models of the same type as
// given prototype. Panics on an invalid bucket name.
func NewModelBucket(name string, prototype Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	t := reflect.TypeOf(prototype)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("model must be a pointer, got %T", prototype))
	}
	mb := &modelBucket{
		name:      name,
		prefix:    []byte(name + ":"),
		modelType: t,
		indexes:   make(map[string]*index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name      string
	prefix    []byte
	modelType reflect.Type
	indexes   map[string]*index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return dbKey(mb.prefix, key)
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.modelType.Elem()).Interface().(Model)
}

func (mb *modelBucket) checkType(m Model) error {
	if reflect.TypeOf(m) != mb.modelType {
		return errors.Wrapf(errors.ErrType, "%s bucket cannot store %T", mb.name, m)
	}
	return nil
}

func (mb *modelBucket) One(db barter.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := mb.checkType(dest); err != nil {
		return err
	}
	bz, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if bz == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	dest.Reset()
	return barter.Unmarshal(bz, dest)
}

func (mb *modelBucket) Has(db barter.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

func (mb *modelBucket) Put(db barter.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := mb.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	bz, err := barter.Marshal(m)
	if err != nil {
		return err
	}
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if err := mb.updateIndexes(db, key, prev, m); err != nil {
		return err
	}
	if err := db.Set(mb.dbKey(key), bz); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (mb *modelBucket) Insert(db barter.KVStore, key []byte, m Model) error {
	exists, err := mb.Has(db, key)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(errors.ErrDuplicate, "%s with key %X", mb.name, key)
	}
	return mb.Put(db, key, m)
}

func (mb *modelBucket) Delete(db barter.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s with key %X", mb.name, key)
	}
	if err := mb.updateIndexes(db, key, prev, nil); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// load returns the stored model or nil.
func (mb *modelBucket) load(db barter.ReadOnlyKVStore, key []byte) (Model, error) {
	bz, err := db.Get(mb.dbKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if bz == nil {
		return nil, nil
	}
	m := mb.newModel()
	if err := barter.Unmarshal(bz, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (mb *modelBucket) updateIndexes(db barter.KVStore, key []byte, prev, save Model) error {
	// All constraints are checked before the first write, so that a
	// failure leaves no partial index update behind.
	if save != nil {
		for _, idx := range mb.indexes {
			if err := idx.check(db, key, save); err != nil {
				return err
			}
		}
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, save); err != nil {
			return err
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db barter.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, indexName)
	}
	return idx.Keys(db, value)
}

// Query handles queries from the QueryRouter
func (mb *modelBucket) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	switch mod {
	case barter.KeyQueryMod:
		key := mb.dbKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []barter.Model{barter.Pair(key, value)}, nil
	case barter.PrefixQueryMod:
		return queryPrefix(db, mb.dbKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// Register registers this bucket and all indexes.
// You can define a name here for queries, which is
// different than the bucket name used to prefix the data
func (mb *modelBucket) Register(name string, r barter.QueryRouter) {
	if name == "" {
		name = mb.name
	}
	root := "/" + name
	r.Register(root, mb)
	for n, idx := range mb.indexes {
		r.Register(root+"/"+n, idx)
	}
}
