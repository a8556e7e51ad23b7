package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest/assert"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
)

type counter struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Count int64  `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *other) Reset()         { *m = other{} }
func (m *other) String() string { return proto.CompactTextString(m) }
func (*other) ProtoMessage()    {}
func (*other) Validate() error  { return nil }

func ownerIndex(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return c.Owner, nil
}

func countIndex(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.WithType(errors.ErrType, m)
	}
	return []byte{byte(c.Count)}, nil
}

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	assert.Nil(t, b.Put(db, []byte("c1"), &counter{Count: 1}))

	var c1 counter
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(1), c1.Count)

	has, err := b.Has(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	// overwrite is allowed by Put, but not by Insert
	assert.Nil(t, b.Put(db, []byte("c1"), &counter{Count: 2}))
	assert.IsErr(t, errors.ErrDuplicate, b.Insert(db, []byte("c1"), &counter{Count: 3}))
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(2), c1.Count)

	assert.IsErr(t, errors.ErrModel, b.Put(db, []byte("c2"), &counter{Count: -1}))
	assert.IsErr(t, errors.ErrType, b.Put(db, []byte("c2"), &other{Name: "x"}))
	assert.IsErr(t, errors.ErrType, b.One(db, []byte("c1"), &other{}))
	assert.IsErr(t, errors.ErrEmpty, b.Put(db, nil, &counter{}))

	assert.Nil(t, b.Delete(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.Delete(db, []byte("c1")))
	assert.IsErr(t, errors.ErrNotFound, b.One(db, []byte("c1"), &c1))

	// once deleted, the key can be claimed again
	assert.Nil(t, b.Insert(db, []byte("c1"), &counter{Count: 5}))
}

func TestModelBucketIllegalName(t *testing.T) {
	assert.Panics(t, func() { NewModelBucket("x", &counter{}) })
	assert.Panics(t, func() { NewModelBucket("Counters", &counter{}) })
	assert.Panics(t, func() {
		NewModelBucket("cnts", &counter{},
			WithIndex("owner", ownerIndex, false),
			WithIndex("owner", ownerIndex, false))
	})
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{},
		WithIndex("owner", ownerIndex, false),
		WithIndex("count", countIndex, true))

	alice, bob := []byte("alice"), []byte("bob")
	assert.Nil(t, b.Insert(db, []byte("a1"), &counter{Owner: alice, Count: 1}))
	assert.Nil(t, b.Insert(db, []byte("a2"), &counter{Owner: alice, Count: 2}))
	assert.Nil(t, b.Insert(db, []byte("b1"), &counter{Owner: bob, Count: 3}))

	// unique index rejects the second owner of a count
	assert.IsErr(t, errors.ErrDuplicate, b.Insert(db, []byte("b2"), &counter{Owner: bob, Count: 3}))

	keys, err := b.ByIndex(db, "owner", alice)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a1"), []byte("a2")}, keys)

	keys, err = b.ByIndex(db, "count", []byte{3})
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("b1")}, keys)

	// moving a model between owners updates the index
	assert.Nil(t, b.Put(db, []byte("a2"), &counter{Owner: bob, Count: 2}))
	keys, err = b.ByIndex(db, "owner", alice)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a1")}, keys)
	keys, err = b.ByIndex(db, "owner", bob)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a2"), []byte("b1")}, keys)

	// delete cleans up the index
	assert.Nil(t, b.Delete(db, []byte("a1")))
	keys, err = b.ByIndex(db, "owner", alice)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(keys))

	_, err = b.ByIndex(db, "unknown", alice)
	assert.IsErr(t, ErrInvalidIndex, err)
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{}, WithIndex("owner", ownerIndex, false))
	qr := barter.NewQueryRouter()
	b.Register("counters", qr)
	RegisterQuery(qr)

	alice := []byte("alice")
	assert.Nil(t, b.Insert(db, []byte("a1"), &counter{Owner: alice, Count: 1}))
	assert.Nil(t, b.Insert(db, []byte("a2"), &counter{Owner: alice, Count: 2}))
	assert.Nil(t, b.Insert(db, []byte("b1"), &counter{Owner: []byte("bob"), Count: 3}))

	cases := map[string]struct {
		path     string
		mod      string
		data     []byte
		wantKeys []string
		wantErr  *errors.Error
	}{
		"by key": {
			path:     "/counters",
			data:     []byte("a2"),
			wantKeys: []string{"cnts:a2"},
		},
		"missing key": {
			path: "/counters",
			data: []byte("zz"),
		},
		"by prefix": {
			path:     "/counters",
			mod:      barter.PrefixQueryMod,
			data:     []byte("a"),
			wantKeys: []string{"cnts:a1", "cnts:a2"},
		},
		"by index": {
			path:     "/counters/owner",
			data:     alice,
			wantKeys: []string{"cnts:a1", "cnts:a2"},
		},
		"by index prefix": {
			path:     "/counters/owner",
			mod:      barter.PrefixQueryMod,
			data:     []byte("b"),
			wantKeys: []string{"cnts:b1"},
		},
		"raw key": {
			path:     "/",
			data:     []byte("cnts:a1"),
			wantKeys: []string{"cnts:a1"},
		},
		"raw prefix": {
			path:     "/",
			mod:      barter.PrefixQueryMod,
			data:     []byte("cnts:b"),
			wantKeys: []string{"cnts:b1"},
		},
		"unknown mod": {
			path:    "/counters",
			mod:     "reverse",
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := qr.Handler(tc.path)
			if h == nil {
				t.Fatalf("no handler for %s", tc.path)
			}
			res, err := h.Query(db, tc.mod, tc.data)
			assert.IsErr(t, tc.wantErr, err)
			var keys []string
			for _, m := range res {
				keys = append(keys, string(m.Key))
			}
			assert.Equal(t, tc.wantKeys, keys)
		})
	}
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":         {prefix: []byte("abc"), want: []byte("abd")},
		"trailing 0xff":  {prefix: []byte{1, 0xff}, want: []byte{2}},
		"only 0xff":      {prefix: []byte{0xff, 0xff}, want: nil},
		"empty is whole": {prefix: nil, want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixEnd(tc.prefix))
		})
	}
}

func TestMultiRef(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.GetRefs())
	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, m.GetRefs())
}
