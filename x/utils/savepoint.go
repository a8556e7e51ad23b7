package utils

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The
// cache is written only if the call succeeds, so a failed Make or Take
// leaves no partial transfer behind.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ barter.Decorator = Savepoint{}

// NewSavepoint is disabled in both phases until OnCheck or OnDeliver is
// called.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	var res *barter.CheckResult
	err := isolate(s.check, db, func(db barter.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	var res *barter.DeliverResult
	err := isolate(s.deliver, db, func(db barter.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// isolate calls fn on a cache wrap of db when enabled and db supports
// caching, and on db itself otherwise.
func isolate(enabled bool, db barter.KVStore, fn func(barter.KVStore) error) error {
	cacheable, ok := db.(barter.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
