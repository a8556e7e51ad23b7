package utils

import (
	"time"

	"github.com/iov-one/barter"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one line per transaction with its path and duration.
// Failures are logged as errors. A successful check is debug level and a
// successful deliver is info level.
type Logging struct{}

var _ barter.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		l.Error("check failed", "err", err)
	default:
		l.Debug("checked", "log", res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLogger(ctx, tx, start)
	switch {
	case err != nil:
		l.Error("deliver failed", "err", err)
	default:
		l.Info("delivered", "log", res.Log)
	}
	return res, err
}

func txLogger(ctx barter.Context, tx barter.Tx, start time.Time) log.Logger {
	return barter.GetLogger(ctx).With(
		"path", barter.GetPath(tx),
		"duration_us", time.Since(start).Microseconds(),
	)
}
