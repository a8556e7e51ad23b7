package store

import "bytes"

// source marks where the current item of a merged iteration comes from
type source int32

const (
	none source = iota
	cached
	parent
	both
)

// mergeIterator joins a snapshot of cached items with the iterator of the
// backing store. Cached entries overwrite parent entries with the same key
// and cached deletes hide them.
type mergeIterator struct {
	cache     []cacheItem
	idx       int
	parent    Iterator
	ascending bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cache []cacheItem, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		cache:     cache,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid implements Iterator and returns true iff it can be read
func (m *mergeIterator) Valid() bool {
	return m.source() != none
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (m *mergeIterator) Next() error {
	switch m.source() {
	case cached:
		m.idx++
	case both:
		m.idx++
		fallthrough
	case parent:
		if err := m.parent.Next(); err != nil {
			return err
		}
	default:
		panic("iterator advanced past the end")
	}
	return m.skipDeleted()
}

// Key returns the key of the cursor.
func (m *mergeIterator) Key() []byte {
	switch m.source() {
	case cached, both:
		return m.cache[m.idx].key
	case parent:
		return m.parent.Key()
	default:
		panic("iterator advanced past the end")
	}
}

// Value returns the value of the cursor.
func (m *mergeIterator) Value() []byte {
	switch m.source() {
	case cached, both:
		return m.cache[m.idx].value
	case parent:
		return m.parent.Value()
	default:
		panic("iterator advanced past the end")
	}
}

// Close releases the Iterator.
func (m *mergeIterator) Close() {
	m.parent.Close()
	m.cache = nil
	m.idx = 0
}

// skipDeleted fast forwards over all cached deletes, together with the
// parent entries they hide.
func (m *mergeIterator) skipDeleted() error {
	for {
		src := m.source()
		if src != cached && src != both {
			return nil
		}
		if !m.cache[m.idx].deleted {
			return nil
		}
		m.idx++
		if src == both {
			if err := m.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// source selects the iterator holding the next key in iteration order.
func (m *mergeIterator) source() source {
	cacheOk := m.idx < len(m.cache)
	parentOk := m.parent != nil && m.parent.Valid()
	switch {
	case !cacheOk && !parentOk:
		return none
	case !parentOk:
		return cached
	case !cacheOk:
		return parent
	}

	cmp := bytes.Compare(m.cache[m.idx].key, m.parent.Key())
	if !m.ascending {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return cached
	case cmp > 0:
		return parent
	default:
		return both
	}
}
