package escrow

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

const (
	// BucketName is where we store the escrows
	BucketName = "escrow"
	// MakerIndex lists the escrows of a single maker
	MakerIndex = "maker"
)

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid
func (e *Escrow) Validate() error {
	if err := e.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := e.Maker.Validate(); err != nil {
		return errors.Wrap(err, "maker")
	}
	if err := validateAssets(e.AssetA, e.AssetB); err != nil {
		return err
	}
	if e.RequestedAmount == 0 {
		return errors.Wrap(errors.ErrAmount, "requested amount")
	}
	if e.Bump > 255 {
		return errors.Wrap(errors.ErrState, "bump")
	}
	return nil
}

// Requested returns the coin the maker wants in return.
func (e *Escrow) Requested() coin.Coin {
	return coin.NewCoin(e.RequestedAmount, e.AssetB)
}

// Authority verifies and returns the vault authority of this escrow.
func (e *Escrow) Authority() (Authority, error) {
	return VerifyAuthority(e.Maker, e.Seed, e.Bump)
}

func validateAssets(a, b string) error {
	if !coin.IsCC(a) {
		return errors.Wrapf(errors.ErrInput, "asset a %q", a)
	}
	if !coin.IsCC(b) {
		return errors.Wrapf(errors.ErrInput, "asset b %q", b)
	}
	return nil
}

func makerIndexer(m orm.Model) ([]byte, error) {
	e, ok := m.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return e.Maker, nil
}

// NewBucket returns a bucket for escrows, indexed by maker.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Escrow{},
		orm.WithIndex(MakerIndex, makerIndexer, false))
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr barter.QueryRouter) {
	NewBucket().Register("escrows", qr)
}
