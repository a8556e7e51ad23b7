package orm

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// RegisterQuery will register a root query (literal keys)
// under "/"
func RegisterQuery(qr barter.QueryRouter) {
	qr.Register("/", rawQuery{})
}

// rawQuery reads the store directly, without any bucket prefix. This is
// what allows a remote client to use buckets over a query connection.
type rawQuery struct{}

var _ barter.QueryHandler = rawQuery{}

func (rawQuery) Query(db barter.ReadOnlyKVStore, mod string, data []byte) ([]barter.Model, error) {
	switch mod {
	case barter.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []barter.Model{barter.Pair(data, value)}, nil
	case barter.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr barter.Iterator) ([]barter.Model, error) {
	defer itr.Close()

	var res []barter.Model
	for itr.Valid() {
		res = append(res, barter.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// queryPrefix returns all models stored under given prefix.
func queryPrefix(db barter.ReadOnlyKVStore, prefix []byte) ([]barter.Model, error) {
	itr, err := db.Iterator(prefix, PrefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// PrefixEnd returns the first key that does not have given prefix, to be
// used as an exclusive iteration end. Nil means no upper limit.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] != 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// dbKey joins prefix and key into a newly allocated slice, so that
// consecutive calls never share a backing array.
func dbKey(prefix, key []byte) []byte {
	out := make([]byte, len(prefix)+len(key))
	copy(out, prefix)
	copy(out[len(prefix):], key)
	return out
}
