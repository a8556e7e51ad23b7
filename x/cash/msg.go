package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

var _ barter.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible.
func (s *SendMsg) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if s.Amount == nil || s.Amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := s.Source.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Destination.Validate(); err != nil {
		return errors.Wrap(err, "dst")
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}

// Selectors of the cash program.
const (
	SelectorSend barter.Selector = 0
)

// Instructions resolves cash selectors into messages.
type Instructions struct{}

var _ barter.Dispatcher = Instructions{}

// Msg returns an empty message for given selector.
func (Instructions) Msg(sel barter.Selector) (barter.Msg, error) {
	switch sel {
	case SelectorSend:
		return &SendMsg{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrMsg, "unknown cash selector %d", sel)
	}
}
