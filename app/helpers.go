package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes a single query path of an abci application as a
// ReadOnlyKVStore. Keys are passed to the query handler unchanged. Use the
// raw "/" path (see orm.RegisterQuery) to read buckets through it.
type ABCIStore struct {
	app  abci.Application
	path string
}

var _ barter.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through queries sent to given path,
// usually "/".
func NewABCIStore(app abci.Application, path string) *ABCIStore {
	return &ABCIStore{app: app, path: path}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	models, err := a.query(a.path, key)
	if err != nil {
		return nil, err
	}
	switch len(models) {
	case 0:
		return nil, nil
	case 1:
		return models[0].Value, nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "%d results for a single key", len(models))
	}
}

// Has returns true if the given key in in the abci app store
func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return len(v) > 0, err
}

// Iterator only supports iteration over the entire range, which is done
// with a single prefix query.
func (a *ABCIStore) Iterator(start, end []byte) (barter.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only the entire range can be iterated")
	}
	models, err := a.query(a.path+"?"+barter.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator works like Iterator but returns the models in descending
// key order.
func (a *ABCIStore) ReverseIterator(start, end []byte) (barter.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only the entire range can be iterated")
	}
	models, err := a.query(a.path+"?"+barter.PrefixQueryMod, nil)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(models)-1; i < j; i, j = i+1, j-1 {
		models[i], models[j] = models[j], models[i]
	}
	return store.NewSliceIterator(models), nil
}

func (a *ABCIStore) query(path string, data []byte) ([]barter.Model, error) {
	res := a.app.Query(abci.RequestQuery{
		Path: path,
		Data: data,
	})
	if res.Code != errors.SuccessABCICode {
		// Keep the registered error so callers can test for it.
		var root error = errors.ErrDatabase
		if e := errors.Lookup(res.Code); e != nil {
			root = e
		}
		return nil, errors.Wrapf(root, "query %s: %s", path, res.Log)
	}
	return toModels(res.Key, res.Value)
}

func toModels(keys, values []byte) ([]barter.Model, error) {
	var k, v ResultSet
	if err := barter.Unmarshal(keys, &k); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := barter.Unmarshal(values, &v); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return JoinResults(&k, &v)
}
