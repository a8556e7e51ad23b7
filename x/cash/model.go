package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

const (
	// BucketName is where account balances are stored.
	BucketName = "cash"

	// VaultBucketName is where vault balances are stored. Vault
	// addresses have no private key, so vaults are kept apart from
	// accounts anyone could credit.
	VaultBucketName = "vault"
)

var _ orm.Model = (*Wallet)(nil)

// NewWallet returns an empty wallet.
func NewWallet() *Wallet {
	return &Wallet{Metadata: &barter.Metadata{Schema: 1}}
}

// Validate requires that all coins are sorted and non zero.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return coin.Coins(w.GetCoins()).Validate()
}

// Balance returns all coins held by the wallet.
func (w *Wallet) Balance() coin.Coins {
	return coin.Coins(w.GetCoins())
}

// Add increases the wallet holdings by c.
func (w *Wallet) Add(c coin.Coin) error {
	cs, err := w.Balance().Add(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// Subtract decreases the wallet holdings by c.
func (w *Wallet) Subtract(c coin.Coin) error {
	cs, err := w.Balance().Subtract(c)
	if err != nil {
		return err
	}
	w.Coins = cs
	return nil
}

// NewBucket returns a bucket storing accounts under their address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Wallet{})
}

// NewVaultBucket returns a bucket storing vaults under their address.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket(VaultBucketName, &Wallet{})
}
