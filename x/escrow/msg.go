package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	pathMakeMsg   = "escrow/make"
	pathTakeMsg   = "escrow/take"
	pathRefundMsg = "escrow/refund"
)

// Selectors of the escrow program.
const (
	SelectorMake   barter.Selector = 0
	SelectorTake   barter.Selector = 1
	SelectorRefund barter.Selector = 2
)

// Instructions resolves escrow selectors into messages.
type Instructions struct{}

var _ barter.Dispatcher = Instructions{}

// Msg returns an empty message for given selector.
func (Instructions) Msg(sel barter.Selector) (barter.Msg, error) {
	switch sel {
	case SelectorMake:
		return &MakeMsg{}, nil
	case SelectorTake:
		return &TakeMsg{}, nil
	case SelectorRefund:
		return &RefundMsg{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown escrow selector %d", sel)
	}
}

var _ barter.Msg = (*MakeMsg)(nil)

// Path fulfills barter.Msg interface to allow routing
func (MakeMsg) Path() string {
	return pathMakeMsg
}

// Validate makes sure that this is sensible
func (m *MakeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.RequestedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "requested amount must be positive")
	}
	if m.DepositAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "deposit amount must be positive")
	}
	return validateAssets(m.AssetA, m.AssetB)
}

var _ barter.Msg = (*TakeMsg)(nil)

// Path fulfills barter.Msg interface to allow routing
func (TakeMsg) Path() string {
	return pathTakeMsg
}

// Validate makes sure that this is sensible
func (m *TakeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if m.Taker != nil {
		if err := m.Taker.Validate(); err != nil {
			return errors.Wrap(err, "taker")
		}
	}
	return validateAssets(m.AssetA, m.AssetB)
}

var _ barter.Msg = (*RefundMsg)(nil)

// Path fulfills barter.Msg interface to allow routing
func (RefundMsg) Path() string {
	return pathRefundMsg
}

// Validate makes sure that this is sensible
func (m *RefundMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(m.Maker.Validate(), "maker")
}
