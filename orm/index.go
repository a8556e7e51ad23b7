package orm

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given model. A nil key
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index is a compact secondary index. A unique index stores the primary key
// directly under the index key, otherwise a MultiRef holds all primary keys.
type index struct {
	name    string
	prefix  []byte
	unique  bool
	indexer Indexer
	// refKey returns the full database key of a primary key
	refKey func([]byte) []byte
}

var _ barter.QueryHandler = (*index)(nil)

func newIndex(bucket, name string, indexer Indexer, unique bool, refKey func([]byte) []byte) *index {
	return &index{
		name:    name,
		prefix:  []byte(indexPrefix + bucket + "_" + name + ":"),
		unique:  unique,
		indexer: indexer,
		refKey:  refKey,
	}
}

// update moves the reference of the model with given primary key.
//
// prev == nil means insert
// save == nil means delete
func (i *index) update(db barter.KVStore, key []byte, prev, save Model) error {
	var oldIdx, newIdx []byte
	var err error
	if prev != nil {
		if oldIdx, err = i.indexer(prev); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if save != nil {
		if newIdx, err = i.indexer(save); err != nil {
			return errors.Wrapf(err, "index %s", i.name)
		}
	}
	if prev != nil && save != nil && string(oldIdx) == string(newIdx) {
		return nil
	}
	if oldIdx != nil {
		if err := i.remove(db, oldIdx, key); err != nil {
			return err
		}
	}
	if newIdx != nil {
		if err := i.insert(db, newIdx, key); err != nil {
			return err
		}
	}
	return nil
}

// check fails if saving the model would break the unique constraint.
func (i *index) check(db barter.ReadOnlyKVStore, key []byte, save Model) error {
	if !i.unique {
		return nil
	}
	value, err := i.indexer(save)
	if err != nil || value == nil {
		return err
	}
	cur, err := db.Get(dbKey(i.prefix, value))
	if err != nil {
		return err
	}
	if cur != nil && string(cur) != string(key) {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	return nil
}

func (i *index) insert(db barter.KVStore, value, ref []byte) error {
	k := dbKey(i.prefix, value)
	cur, err := db.Get(k)
	if err != nil {
		return err
	}
	if i.unique {
		if cur != nil {
			return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
		}
		return db.Set(k, ref)
	}

	var refs MultiRef
	if cur != nil {
		if err := barter.Unmarshal(cur, &refs); err != nil {
			return err
		}
	}
	if err := refs.Add(ref); err != nil {
		return err
	}
	return i.store(db, k, &refs)
}

func (i *index) remove(db barter.KVStore, value, ref []byte) error {
	k := dbKey(i.prefix, value)
	cur, err := db.Get(k)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrapf(errors.ErrHuman, "index %s misses a reference", i.name)
	}
	if i.unique {
		return db.Delete(k)
	}

	var refs MultiRef
	if err := barter.Unmarshal(cur, &refs); err != nil {
		return err
	}
	if err := refs.Remove(ref); err != nil {
		return err
	}
	if len(refs.Refs) == 0 {
		return db.Delete(k)
	}
	return i.store(db, k, &refs)
}

func (i *index) store(db barter.KVStore, k []byte, refs *MultiRef) error {
	bz, err := barter.Marshal(refs)
	if err != nil {
		return err
	}
	return db.Set(k, bz)
}

// Keys returns all primary keys indexed under given value.
func (i *index) Keys(db barter.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	cur, err := db.Get(dbKey(i.prefix, value))
	if err != nil || cur == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{cur}, nil
	}
	var refs MultiRef
	if err := barter.Unmarshal(cur, &refs); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

// Query returns the indexed models. Both exact value and prefix of the
// value queries are supported.
func (i *index) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	var values [][]byte
	switch mod {
	case barter.KeyQueryMod:
		values = [][]byte{data}
	case barter.PrefixQueryMod:
		prefix := dbKey(i.prefix, data)
		entries, err := queryPrefix(db, prefix)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			values = append(values, e.Key[len(i.prefix):])
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}

	var res []barter.Model
	for _, v := range values {
		refs, err := i.Keys(db, v)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			k := i.refKey(ref)
			val, err := db.Get(k)
			if err != nil {
				return nil, err
			}
			res = append(res, barter.Pair(k, val))
		}
	}
	return res, nil
}
