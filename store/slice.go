package store

// SliceIterator iterates over models already loaded in memory, in slice
// order.
type SliceIterator struct {
	data []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return len(s.data) > 0
}

func (s *SliceIterator) Next() error {
	s.current()
	s.data = s.data[1:]
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if len(s.data) == 0 {
		panic("iterator is exhausted")
	}
	return s.data[0]
}

// empty is the bottom layer of a MemStore. It holds nothing and drops
// every write.
type empty struct{}

var _ KVStore = empty{}

func (empty) Get([]byte) ([]byte, error)                    { return nil, nil }
func (empty) Has([]byte) (bool, error)                      { return false, nil }
func (empty) Set(key, value []byte) error                   { return nil }
func (empty) Delete([]byte) error                           { return nil }
func (empty) Iterator(start, end []byte) (Iterator, error)  { return NewSliceIterator(nil), nil }
func (empty) ReverseIterator(s, e []byte) (Iterator, error) { return NewSliceIterator(nil), nil }
func (e empty) NewBatch() Batch                             { return NewNonAtomicBatch(e) }
