package utils

import (
	"context"
	"testing"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/bartertest"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	common "github.com/tendermint/tendermint/libs/common"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("barter", prometheus.NewRegistry())
	ctx := context.Background()
	db := store.MemStore()
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "escrow/make"}}

	_, err := m.Deliver(ctx, db, tx, &bartertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &bartertest.Handler{})
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &bartertest.Handler{DeliverErr: errors.ErrDuplicate})
	assert.True(t, errors.ErrDuplicate.Is(err))
	_, err = m.Check(ctx, db, tx, &bartertest.Handler{})
	assert.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "escrow/make", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "escrow/make", "6")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("check", "escrow/make", "0")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.reclaimed))
}

func TestMetricsReclaimed(t *testing.T) {
	m := NewMetrics("barter", prometheus.NewRegistry())
	ctx := context.Background()
	db := store.MemStore()
	tx := &bartertest.Tx{Msg: &bartertest.Msg{RoutePath: "escrow/take"}}
	closing := &bartertest.Handler{
		DeliverResult: barter.DeliverResult{
			Reclaimed: &barter.Reclaim{Beneficiary: bartertest.NewCondition().Address(), Bytes: 90},
		},
	}

	_, err := m.Deliver(ctx, db, tx, closing)
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, closing)
	assert.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &bartertest.Handler{DeliverErr: errors.ErrNotFound})
	assert.True(t, errors.ErrNotFound.Is(err))

	assert.Equal(t, 180.0, testutil.ToFloat64(m.reclaimed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.txs.WithLabelValues("deliver", "escrow/take", "3")))
}

func TestMetricsRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics("barter", reg)
	assert.Panics(t, func() { NewMetrics("barter", reg) })
}

func barterResult(tags ...common.KVPair) barter.DeliverResult {
	return barter.DeliverResult{Tags: tags}
}
