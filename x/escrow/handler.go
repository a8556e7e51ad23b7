package escrow

import (
	"fmt"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
	"github.com/iov-one/barter/x"
	"github.com/iov-one/barter/x/cash"
)

const (
	// gas allocated by the check phase
	makeEscrowCost   int64 = 300
	takeEscrowCost   int64 = 100
	refundEscrowCost int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r barter.Registry, auth x.Authenticator, bank cash.Controller) {
	bucket := NewBucket()
	r.Handle(pathMakeMsg, MakeHandler{auth, bucket, bank})
	r.Handle(pathTakeMsg, TakeHandler{auth, bucket, bank})
	r.Handle(pathRefundMsg, RefundHandler{auth, bucket, bank})
}

// MakeHandler opens an escrow and funds its vault.
type MakeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ barter.Handler = MakeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h MakeHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver stores the escrow, allocates the vault and moves the deposit
// into it.
func (h MakeHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	msg, auth, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	escrow := &Escrow{
		Metadata:        &barter.Metadata{Schema: 1},
		Maker:           msg.Maker,
		AssetA:          msg.AssetA,
		AssetB:          msg.AssetB,
		RequestedAmount: msg.RequestedAmount,
		Seed:            msg.Seed,
		Bump:            uint32(auth.Bump),
	}
	key := auth.Address()
	if err := h.bucket.Insert(db, key, escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	if err := h.bank.Open(db, key); err != nil {
		return nil, errors.Wrap(err, "cannot allocate vault")
	}
	deposit := coin.NewCoin(msg.DepositAmount, msg.AssetA)
	if err := h.bank.Lock(db, msg.Maker, key, deposit); err != nil {
		return nil, errors.Wrap(err, "cannot fund vault")
	}

	barter.GetLogger(ctx).Info("escrow made",
		"escrow", key,
		"maker", msg.Maker,
		"seed", msg.Seed,
		"deposit", deposit.Human(),
		"requested", escrow.Requested().Human())
	return &barter.DeliverResult{Data: key}, nil
}

// validate does all common pre-processing between Check and Deliver.
// Every failure is detected before anything is written.
func (h MakeHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*MakeMsg, Authority, error) {
	var msg MakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, Authority{}, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, Authority{}, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	auth, err := DeriveAuthority(msg.Maker, msg.Seed)
	if err != nil {
		return nil, Authority{}, err
	}
	key := auth.Address()
	if exists, err := h.bucket.Has(db, key); err != nil {
		return nil, Authority{}, err
	} else if exists {
		return nil, Authority{}, errors.Wrapf(errors.ErrDuplicate, "escrow %d of %s", msg.Seed, msg.Maker)
	}
	if live, err := h.bank.HasVault(db, key); err != nil {
		return nil, Authority{}, err
	} else if live {
		return nil, Authority{}, errors.Wrapf(errors.ErrDuplicate, "vault %s in use", key)
	}

	balance, err := h.bank.Balance(db, msg.Maker)
	if err != nil {
		return nil, Authority{}, err
	}
	if have := balance.Balance(msg.AssetA); have < msg.DepositAmount {
		return nil, Authority{}, errors.Wrapf(errors.ErrInsufficientAmount,
			"maker has %d %s, deposit is %d", have, msg.AssetA, msg.DepositAmount)
	}
	return &msg, auth, nil
}

// TakeHandler completes the trade.
type TakeHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ barter.Handler = TakeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h TakeHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver pays the maker, releases the vault to the taker and destroys
// the escrow.
func (h TakeHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	key, escrow, taker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.bank.MoveCoins(db, taker, escrow.Maker, escrow.Requested()); err != nil {
		return nil, errors.Wrap(err, "cannot pay maker")
	}
	released, err := releaseVault(db, h.bank, escrow, taker)
	if err != nil {
		return nil, err
	}
	reclaimed, err := destroy(db, h.bucket, h.bank, key)
	if err != nil {
		return nil, err
	}

	barter.GetLogger(ctx).Info("escrow taken",
		"escrow", key,
		"taker", taker,
		"released", released.String(),
		"paid", escrow.Requested().Human(),
		"reclaimed", reclaimed)
	return reclaimResult(key, escrow.Maker, reclaimed), nil
}

func (h TakeHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (barter.Address, *Escrow, barter.Address, error) {
	var msg TakeMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	key, escrow, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, nil, err
	}

	taker := msg.Taker
	if taker == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		taker = signer.Address()
	} else if !h.auth.HasAddress(ctx, taker) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	if msg.AssetA != escrow.AssetA || msg.AssetB != escrow.AssetB {
		return nil, nil, nil, errors.Wrapf(ErrMintMismatch, "escrow trades %s for %s, not %s for %s",
			escrow.AssetA, escrow.AssetB, msg.AssetA, msg.AssetB)
	}

	balance, err := h.bank.Balance(db, taker)
	if err != nil {
		return nil, nil, nil, err
	}
	if have := balance.Balance(escrow.AssetB); have < escrow.RequestedAmount {
		return nil, nil, nil, errors.Wrapf(errors.ErrInsufficientAmount,
			"taker has %d %s, requested is %d", have, escrow.AssetB, escrow.RequestedAmount)
	}
	return key, escrow, taker, nil
}

// RefundHandler cancels the escrow and returns the deposit to the maker.
type RefundHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ barter.Handler = RefundHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefundHandler) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &barter.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver returns the vault content to the maker and destroys the escrow.
func (h RefundHandler) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx) (*barter.DeliverResult, error) {
	key, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	released, err := releaseVault(db, h.bank, escrow, escrow.Maker)
	if err != nil {
		return nil, err
	}
	reclaimed, err := destroy(db, h.bucket, h.bank, key)
	if err != nil {
		return nil, err
	}

	barter.GetLogger(ctx).Info("escrow refunded",
		"escrow", key,
		"released", released.String(),
		"reclaimed", reclaimed)
	return reclaimResult(key, escrow.Maker, reclaimed), nil
}

func (h RefundHandler) validate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (barter.Address, *Escrow, error) {
	var msg RefundMsg
	if err := barter.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	key, escrow, err := loadEscrow(db, h.bucket, msg.Maker, msg.Seed)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the maker can refund")
	}
	return key, escrow, nil
}

// loadEscrow locates the escrow by deriving its address.
func loadEscrow(db barter.ReadOnlyKVStore, bucket orm.ModelBucket, maker barter.Address, seed uint64) (barter.Address, *Escrow, error) {
	auth, err := DeriveAuthority(maker, seed)
	if err != nil {
		return nil, nil, err
	}
	key := auth.Address()
	var escrow Escrow
	if err := bucket.One(db, key, &escrow); err != nil {
		return nil, nil, errors.Wrapf(err, "escrow %d of %s", seed, maker)
	}
	return key, &escrow, nil
}

// releaseVault moves everything held by the vault to given destination.
// The vault authority is verified against the record before any funds
// move.
func releaseVault(db barter.KVStore, bank cash.Controller, escrow *Escrow, dest barter.Address) (coin.Coins, error) {
	auth, err := escrow.Authority()
	if err != nil {
		return nil, errors.Wrap(err, "vault authority")
	}
	held, err := bank.Release(db, auth.Address(), dest)
	if err != nil {
		return nil, errors.Wrap(err, "cannot release vault")
	}
	return held, nil
}

// destroy closes the empty vault and deletes the escrow record. It returns
// the number of storage bytes released.
func destroy(db barter.KVStore, bucket orm.ModelBucket, bank cash.Controller, key barter.Address) (int, error) {
	var escrow Escrow
	if err := bucket.One(db, key, &escrow); err != nil {
		return 0, errors.Wrap(err, "escrow")
	}
	raw, err := barter.Marshal(&escrow)
	if err != nil {
		return 0, err
	}
	vault, err := bank.Close(db, key)
	if err != nil {
		return 0, errors.Wrap(err, "cannot close vault")
	}
	if err := bucket.Delete(db, key); err != nil {
		return 0, errors.Wrap(err, "cannot delete escrow")
	}
	return vault + len(BucketName) + 1 + len(key) + len(raw), nil
}

// reclaimResult credits the storage released by destroy to the maker.
func reclaimResult(key, maker barter.Address, reclaimed int) *barter.DeliverResult {
	return &barter.DeliverResult{
		Data: key,
		Log:  fmt.Sprintf("reclaimed %d bytes to %s", reclaimed, maker),
		Reclaimed: &barter.Reclaim{
			Beneficiary: maker,
			Bytes:       int64(reclaimed),
		},
	}
}
