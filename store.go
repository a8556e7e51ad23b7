package barter

// ReadOnlyKVStore reads a key-value store. Keys are compared bytewise.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks start <= key < end in ascending order. A nil bound
	// is open. The range must not be written while the iterator is
	// open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks the same range in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write half shared by KVStore and Batch. Callers must
// not modify key or value after the call.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes that Write applies together.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a range of keys:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		use(it.Key(), it.Value())
//	}
//
// Next, Key and Value panic once Valid returned false.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stage writes in a cache layer. A failed
// transaction discards its layer, a successful one writes it to the
// store below.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a cache layer. Reads see the staged writes on top of
// the parent store. Layers nest.
type KVCacheWrap interface {
	CacheableKVStore

	// Write applies the staged writes to the parent.
	Write() error

	// Discard drops the staged writes. The layer must not be used
	// afterwards.
	Discard()
}

// CommitKVStore is the persistent root store. All changes go through a
// CacheWrap and become durable on Commit, which creates a new version.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	Commit() (CommitID, error)

	// LoadLatestVersion restores the last complete commit. A commit
	// interrupted by a crash is ignored.
	LoadLatestVersion() error

	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its height and its merkle
// root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
