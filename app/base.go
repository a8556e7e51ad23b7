package app

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions through a decoder and a handler on top of
// the storage and queries of StoreApp.
type BaseApp struct {
	*StoreApp
	decoder barter.TxDecoder
	handler barter.Handler
}

var _ abci.Application = BaseApp{}

func NewBaseApp(store *StoreApp, decoder barter.TxDecoder, handler barter.Handler) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
	}
}

// CheckTx runs the check phase against the mempool state. A failing
// transaction never enters the mempool.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	ctx, tx, err := b.decode(raw, "check_tx")
	if err != nil {
		return checkResponse(nil, err, b.debug)
	}
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return checkResponse(res, err, b.debug)
}

// DeliverTx runs a transaction included in the current block.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	ctx, tx, err := b.decode(raw, "deliver_tx")
	if err != nil {
		return deliverResponse(nil, err, b.debug)
	}
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	if err == nil && res.Reclaimed != nil {
		barter.GetLogger(ctx).Debug("escrow closed",
			"beneficiary", res.Reclaimed.Beneficiary,
			"bytes", res.Reclaimed.Bytes)
	}
	return deliverResponse(res, err, b.debug)
}

// decode parses raw into a transaction and returns the block context
// annotated with the phase and the message path. A panicking decoder
// results in ErrPanic.
func (b BaseApp) decode(raw []byte, call string) (ctx barter.Context, tx barter.Tx, err error) {
	defer errors.Recover(&err)
	if tx, err = b.decoder(raw); err != nil {
		return nil, nil, err
	}
	ctx = barter.WithLogInfo(b.BlockContext(), "call", call, "path", barter.GetPath(tx))
	return ctx, tx, nil
}
