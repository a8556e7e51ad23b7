/*
Package sigs authenticates transactions by their ed25519 signatures. Each
key has a sequence that every signature must match and that moves forward
once the signature is accepted, so a signed transaction is never applied
twice.
*/
package sigs

import (
	"context"

	"github.com/iov-one/barter"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/x"
)

// signatureGas is paid in the check phase for every valid signature.
const signatureGas = 500

// RegisterQuery serves the signer accounts under "/auth".
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a SignedTx and hands the signers
// to the rest of the stack through the context. Other transactions pass
// unchanged.
type Decorator struct {
	allowMissingSigs bool
}

var _ barter.Decorator = Decorator{}

// NewDecorator rejects a SignedTx without signatures.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a decorator that passes unsigned transactions
// with no signers.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Checker) (*barter.CheckResult, error) {
	ctx, signed, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasPayment += int64(signed * signatureGas)
	return res, nil
}

func (d Decorator) Deliver(ctx barter.Context, db barter.KVStore, tx barter.Tx, next barter.Deliverer) (*barter.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns ctx carrying the signers of tx and their number.
func (d Decorator) authenticate(ctx barter.Context, db barter.KVStore, tx barter.Tx) (barter.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := verifySignatures(db, stx, barter.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, signers), len(signers), nil
}

type signersKey struct{}

// Authenticate reports the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx barter.Context) []barter.Condition {
	signers, _ := ctx.Value(signersKey{}).([]barter.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx barter.Context, addr barter.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if s.Address().Equals(addr) {
			return true
		}
	}
	return false
}
