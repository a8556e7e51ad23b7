package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions by path and
// result code, and observes how long their processing took. Storage
// released by closed escrows is counted separately.
type Metrics struct {
	txs       *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	reclaimed prometheus.Counter
}

var _ barter.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors
// with given registerer. It panics if the collectors cannot be
// registered.
func NewMetrics(namespace string, reg prometheus.Registerer) Metrics {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Total transactions processed, by phase, path and result code.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transaction_duration_seconds",
			Help:      "Duration of transaction processing in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase", "path"}),
		reclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reclaimed_bytes_total",
			Help:      "Storage bytes released by closed escrows.",
		}),
	}
	reg.MustRegister(m.txs, m.duration, m.reclaimed)
	return m
}

// Check records the outcome of the check phase.
func (m Metrics) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the outcome of the deliver phase.
func (m Metrics) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.observe("deliver", tx, start, err)
	if err == nil && res.Reclaimed != nil {
		m.reclaimed.Add(float64(res.Reclaimed.Bytes))
	}
	return res, err
}

func (m Metrics) observe(phase string, tx barter.Tx, start time.Time, err error) {
	path := barter.GetPath(tx)
	code := strconv.FormatUint(uint64(errors.Code(err)), 10)
	m.txs.WithLabelValues(phase, path, code).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}
