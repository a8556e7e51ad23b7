package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

// sendGas is allocated by the check of every SendMsg.
const sendGas = 100

// RegisterRoutes serves SendMsg.
func RegisterRoutes(r barter.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// RegisterQuery exposes accounts as "/wallets" and vaults as "/vaults".
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("wallets", qr)
	NewVaultBucket().Register("vaults", qr)
}

// SendHandler transfers coins between two accounts. The source account
// must have signed.
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ barter.Handler = SendHandler{}

func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{auth: auth, control: control}
}

func (h SendHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, err := h.authorize(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: sendGas}, nil
}

func (h SendHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, err := h.authorize(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	barter.GetLogger(ctx).Debug("cash sent",
		"src", msg.Source, "dst", msg.Destination, "amount", msg.Amount.Human())
	return &barter.DeliverResult{}, nil
}

// authorize loads the message and refuses a send that is not signed by
// its source or that credits a live vault. Vaults are funded by their
// escrow only.
func (h SendHandler) authorize(ctx barter.Context, db barter.ReadOnlyKVStore, tx barter.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "missing signature of %s", msg.Source)
	}
	vault, err := h.control.HasVault(db, msg.Destination)
	switch {
	case err != nil:
		return nil, err
	case vault:
		return nil, errors.Wrapf(errors.ErrUnauthorized, "destination %s is a vault", msg.Destination)
	}
	return &msg, nil
}
