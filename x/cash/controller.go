package cash

import (
	"github.com/iov-one/barter"
	"github.com/iov-one/barter/coin"
	"github.com/iov-one/barter/errors"
	"github.com/iov-one/barter/orm"
)

// Controller is the transfer primitive shared by the cash and escrow
// handlers. Accounts and vaults live in separate buckets: account
// transfers can never credit or debit a vault.
type Controller interface {
	// Balance returns all coins held by the account. An unknown
	// account holds nothing.
	Balance(db barter.ReadOnlyKVStore, account barter.Address) (coin.Coins, error)

	// MoveCoins transfers amount between two accounts. It fails
	// without writing anything if src does not hold enough coins or if
	// dest is the address of a live vault.
	MoveCoins(db barter.KVStore, src, dest barter.Address, amount coin.Coin) error

	// CoinMint credits an account with a new amount of coins.
	CoinMint(db barter.KVStore, account barter.Address, amount coin.Coin) error

	Vaults
}

// Vaults is the custody side of the controller. Only the escrow
// extension holds the authority over vault addresses, so only the escrow
// handlers call these.
type Vaults interface {
	// Open allocates an empty vault. It fails with ErrDuplicate if the
	// vault is live.
	Open(db barter.KVStore, vault barter.Address) error

	// HasVault reports whether the vault is live.
	HasVault(db barter.ReadOnlyKVStore, vault barter.Address) (bool, error)

	// VaultBalance returns the coins held by a vault.
	VaultBalance(db barter.ReadOnlyKVStore, vault barter.Address) (coin.Coins, error)

	// Lock moves amount from an account into a live vault.
	Lock(db barter.KVStore, src, vault barter.Address, amount coin.Coin) error

	// Release moves everything held by the vault to an account and
	// returns what was moved.
	Release(db barter.KVStore, vault, dest barter.Address) (coin.Coins, error)

	// Close deletes an empty vault and returns the number of storage
	// bytes released.
	Close(db barter.KVStore, vault barter.Address) (int, error)
}

// BaseController keeps accounts and vaults in two wallet buckets.
type BaseController struct {
	accounts orm.ModelBucket
	vaults   orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller storing accounts in given bucket.
// Vaults are always stored in the vault bucket.
func NewController(accounts orm.ModelBucket) BaseController {
	return BaseController{
		accounts: accounts,
		vaults:   NewVaultBucket(),
	}
}

func (c BaseController) Balance(db barter.ReadOnlyKVStore, account barter.Address) (coin.Coins, error) {
	w, err := loadWallet(db, c.accounts, account)
	if err != nil {
		return nil, err
	}
	return w.Balance(), nil
}

func (c BaseController) MoveCoins(db barter.KVStore, src, dest barter.Address, amount coin.Coin) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if err := c.creditable(db, dest); err != nil {
		return err
	}
	sender, err := debit(db, c.accounts, src, amount)
	if err != nil {
		return err
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := loadWallet(db, c.accounts, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if err := c.accounts.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return errors.Wrap(c.accounts.Put(db, dest, recipient), "save recipient")
}

func (c BaseController) CoinMint(db barter.KVStore, account barter.Address, amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if err := c.creditable(db, account); err != nil {
		return err
	}
	w, err := loadWallet(db, c.accounts, account)
	if err != nil {
		return err
	}
	if err := w.Add(amount); err != nil {
		return err
	}
	return c.accounts.Put(db, account, w)
}

// creditable refuses account credits to the address of a live vault.
func (c BaseController) creditable(db barter.ReadOnlyKVStore, dest barter.Address) error {
	live, err := c.HasVault(db, dest)
	if err != nil {
		return err
	}
	if live {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is a vault", dest)
	}
	return nil
}

func (c BaseController) Open(db barter.KVStore, vault barter.Address) error {
	if err := vault.Validate(); err != nil {
		return errors.Wrap(err, "vault address")
	}
	return errors.Wrapf(c.vaults.Insert(db, vault, NewWallet()), "vault %s", vault)
}

func (c BaseController) HasVault(db barter.ReadOnlyKVStore, vault barter.Address) (bool, error) {
	return c.vaults.Has(db, vault)
}

func (c BaseController) VaultBalance(db barter.ReadOnlyKVStore, vault barter.Address) (coin.Coins, error) {
	w, err := loadWallet(db, c.vaults, vault)
	if err != nil {
		return nil, err
	}
	return w.Balance(), nil
}

func (c BaseController) Lock(db barter.KVStore, src, vault barter.Address, amount coin.Coin) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	var held Wallet
	if err := c.vaults.One(db, vault, &held); err != nil {
		return errors.Wrapf(err, "vault %s", vault)
	}
	sender, err := debit(db, c.accounts, src, amount)
	if err != nil {
		return err
	}
	if err := held.Add(amount); err != nil {
		return err
	}
	if err := c.accounts.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	return errors.Wrap(c.vaults.Put(db, vault, &held), "save vault")
}

func (c BaseController) Release(db barter.KVStore, vault, dest barter.Address) (coin.Coins, error) {
	var held Wallet
	if err := c.vaults.One(db, vault, &held); err != nil {
		return nil, errors.Wrapf(err, "vault %s", vault)
	}
	if err := c.creditable(db, dest); err != nil {
		return nil, err
	}
	recipient, err := loadWallet(db, c.accounts, dest)
	if err != nil {
		return nil, err
	}
	released := held.Balance()
	for _, amount := range released {
		if err := recipient.Add(*amount); err != nil {
			return nil, err
		}
	}
	held.Coins = nil
	if err := c.vaults.Put(db, vault, &held); err != nil {
		return nil, errors.Wrap(err, "save vault")
	}
	if err := c.accounts.Put(db, dest, recipient); err != nil {
		return nil, errors.Wrap(err, "save recipient")
	}
	return released, nil
}

func (c BaseController) Close(db barter.KVStore, vault barter.Address) (int, error) {
	var held Wallet
	if err := c.vaults.One(db, vault, &held); err != nil {
		return 0, errors.Wrapf(err, "vault %s", vault)
	}
	if !held.Balance().IsEmpty() {
		return 0, errors.Wrapf(errors.ErrState, "vault %s holds %s", vault, held.Balance())
	}
	raw, err := barter.Marshal(&held)
	if err != nil {
		return 0, err
	}
	if err := c.vaults.Delete(db, vault); err != nil {
		return 0, errors.Wrapf(err, "vault %s", vault)
	}
	return len(VaultBucketName) + 1 + len(vault) + len(raw), nil
}

func checkAmount(amount coin.Coin) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	return errors.Wrap(amount.Validate(), "amount")
}

// debit returns the wallet of src with amount subtracted. Nothing is
// written.
func debit(db barter.ReadOnlyKVStore, bucket orm.ModelBucket, src barter.Address, amount coin.Coin) (*Wallet, error) {
	var w Wallet
	switch err := bucket.One(db, src, &w); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "empty account %s", src)
	default:
		return nil, errors.Wrap(err, "sender")
	}
	if !w.Balance().Contains(amount) {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "%s has %d %s, needs %d",
			src, w.Balance().Balance(amount.Ticker), amount.Ticker, amount.Amount)
	}
	if err := w.Subtract(amount); err != nil {
		return nil, err
	}
	return &w, nil
}

// loadWallet returns the wallet stored under addr or a new empty one.
func loadWallet(db barter.ReadOnlyKVStore, bucket orm.ModelBucket, addr barter.Address) (*Wallet, error) {
	var w Wallet
	switch err := bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return NewWallet(), nil
	default:
		return nil, errors.Wrap(err, "wallet")
	}
}
