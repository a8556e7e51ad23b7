package utils

import (
	"github.com/iov-one/barter"
	common "github.com/tendermint/tendermint/libs/common"
)

// Tag keys appended to successful deliver results. A client follows
// completed trades by subscribing to "action='escrow/take'", and the
// rent paid back to a maker with "reclaimed='<address>'".
const (
	ActionKey    = "action"
	ReclaimedKey = "reclaimed"
)

// ActionTagger tags every delivered transaction with its message path.
// Transactions that closed an escrow are also tagged with the address
// credited with the released storage.
type ActionTagger struct{}

var _ barter.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, tag(ActionKey, msg.Path()))
	if r := res.Reclaimed; r != nil {
		res.Tags = append(res.Tags, tag(ReclaimedKey, r.Beneficiary.String()))
	}
	return res, nil
}

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}
