package barter_test

import (
	"testing"

	"github.com/iov-one/barter"
	"github.com/stretchr/testify/assert"
)

type staticQuery []barter.Model

func (q staticQuery) Query(barter.ReadOnlyKVStore, string, []byte) ([]barter.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	escrows := staticQuery{barter.Pair([]byte("k"), []byte("v"))}
	r := barter.NewQueryRouter()
	r.RegisterAll(func(qr barter.QueryRouter) {
		qr.Register("/escrows", escrows)
		qr.Register("/escrows/maker", staticQuery{})
	})

	assert.Equal(t, escrows, r.Handler("/escrows"))
	assert.Equal(t, staticQuery{}, r.Handler("/escrows/maker"))
	assert.Nil(t, r.Handler("/wallets"))
	assert.Nil(t, r.Handler("/escrows?prefix"))

	assert.Panics(t, func() { r.Register("/escrows", staticQuery{}) })
	assert.Panics(t, func() { r.Register("escrows", staticQuery{}) })
	assert.Panics(t, func() { r.Register("/escrows?prefix", staticQuery{}) })
}
