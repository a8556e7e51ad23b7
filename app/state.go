package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

// chainIDKey holds the chain id written at genesis. Keys starting with
// "_bt:" are kept outside of every bucket.
const chainIDKey = "_bt:chainID"

// state is the committed store and the two caches that transactions run
// against until the next commit. Deliver writes are committed with the
// block and check writes are dropped.
type state struct {
	committed barter.CommitKVStore
	deliver   barter.KVCacheWrap
	check     barter.KVCacheWrap
}

func loadState(db barter.CommitKVStore) (*state, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	s := &state{committed: db}
	s.reset()
	return s, nil
}

func (s *state) reset() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

// commit persists the delivered block and starts the next one from it.
func (s *state) commit() (barter.CommitID, error) {
	if err := s.deliver.Write(); err != nil {
		return barter.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	s.check.Discard()
	id, err := s.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	s.reset()
	return id, nil
}

func (s *state) latest() (barter.CommitID, error) {
	return s.committed.LatestVersion()
}

// chainID is empty until genesis is loaded.
func (s *state) chainID() (string, error) {
	raw, err := s.deliver.Get([]byte(chainIDKey))
	return string(raw), errors.Wrap(err, "load chain id")
}

func (s *state) setChainID(id string) error {
	if !barter.IsValidChainID(id) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", id)
	}
	switch set, err := s.deliver.Has([]byte(chainIDKey)); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case set:
		return errors.Wrap(errors.ErrImmutable, "chain id already set at genesis")
	}
	return errors.Wrap(s.deliver.Set([]byte(chainIDKey), []byte(id)), "save chain id")
}
