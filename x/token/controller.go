package token

import (
	"math"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

// Controller moves tokens between wallets. All methods operate on the store
// of the current transaction and leave it untouched when they fail.
type Controller struct {
	wallets    orm.ModelBucket
	allowances orm.ModelBucket
	info       orm.ModelBucket
}

// NewController returns a controller operating on the token buckets.
func NewController() Controller {
	return Controller{
		wallets:    newWalletBucket(),
		allowances: newAllowanceBucket(),
		info:       newInfoBucket(),
	}
}

// Info returns the token description. ErrNotFound is returned if the token
// was never configured.
func (c Controller) Info(db timelock.ReadOnlyKVStore) (*Info, error) {
	var info Info
	if err := c.info.One(db, infoKey, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SetInfo stores the token description. The total supply is owned by the
// controller and cannot be changed this way.
func (c Controller) SetInfo(db timelock.KVStore, ticker, name string, decimals int32) error {
	info, err := c.Info(db)
	switch {
	case errors.ErrNotFound.Is(err):
		info = &Info{}
	case err != nil:
		return err
	}
	info.Ticker = ticker
	info.Name = name
	info.Decimals = decimals
	return c.info.Put(db, infoKey, info)
}

// TotalSupply returns the amount of all minted tokens.
func (c Controller) TotalSupply(db timelock.ReadOnlyKVStore) (uint64, error) {
	info, err := c.Info(db)
	if err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, nil
		}
		return 0, err
	}
	return info.TotalSupply, nil
}

// Balance returns the amount owned by given address. Unknown addresses own
// nothing.
func (c Controller) Balance(db timelock.ReadOnlyKVStore, owner timelock.Address) (uint64, error) {
	w, err := c.wallet(db, owner)
	if err != nil {
		return 0, err
	}
	return w.Balance, nil
}

// Allowance returns the amount spender may move out of the owner's wallet.
func (c Controller) Allowance(db timelock.ReadOnlyKVStore, owner, spender timelock.Address) (uint64, error) {
	a, err := c.allowance(db, owner, spender)
	if err != nil {
		return 0, err
	}
	return a.Amount, nil
}

// Approve sets the amount spender may move out of the owner's wallet. Any
// previous allowance is replaced.
func (c Controller) Approve(db timelock.KVStore, owner, spender timelock.Address, amount uint64) error {
	a := &Allowance{Owner: owner, Spender: spender, Amount: amount}
	return c.allowances.Put(db, allowanceKey(owner, spender), a)
}

// Transfer moves amount from src to dest. It fails if src does not have
// sufficient funds.
func (c Controller) Transfer(db timelock.KVStore, src, dest timelock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero transfer")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	sender, err := c.wallet(db, src)
	if err != nil {
		return err
	}
	if sender.Balance < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, required %d", sender.Balance, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	recipient, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	if recipient.Balance > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	sender.Balance -= amount
	recipient.Balance += amount

	if err := c.wallets.Put(db, sender.Owner, sender); err != nil {
		return err
	}
	return c.wallets.Put(db, recipient.Owner, recipient)
}

// TransferFrom moves amount from the owner's wallet to dest, spending the
// allowance that the owner granted to spender.
func (c Controller) TransferFrom(db timelock.KVStore, spender, owner, dest timelock.Address, amount uint64) error {
	a, err := c.allowance(db, owner, spender)
	if err != nil {
		return err
	}
	if a.Amount < amount {
		return errors.Wrapf(errors.ErrUnauthorized, "allowance %d, required %d", a.Amount, amount)
	}
	if err := c.Transfer(db, owner, dest, amount); err != nil {
		return err
	}
	a.Amount -= amount
	return c.allowances.Put(db, allowanceKey(owner, spender), a)
}

// Mint creates amount of new tokens in the wallet of dest.
func (c Controller) Mint(db timelock.KVStore, dest timelock.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "zero mint")
	}
	info, err := c.Info(db)
	if err != nil {
		return errors.Wrap(err, "token not configured")
	}
	if info.TotalSupply > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	w, err := c.wallet(db, dest)
	if err != nil {
		return err
	}
	// balance never exceeds the supply, so it cannot overflow either
	w.Balance += amount
	info.TotalSupply += amount

	if err := c.wallets.Put(db, w.Owner, w); err != nil {
		return err
	}
	return c.info.Put(db, infoKey, info)
}

// wallet returns the stored wallet or an empty one for a valid, unknown
// address.
func (c Controller) wallet(db timelock.ReadOnlyKVStore, owner timelock.Address) (*Wallet, error) {
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	var w Wallet
	switch err := c.wallets.One(db, owner, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Owner: owner}, nil
	default:
		return nil, err
	}
}

func (c Controller) allowance(db timelock.ReadOnlyKVStore, owner, spender timelock.Address) (*Allowance, error) {
	var a Allowance
	switch err := c.allowances.One(db, allowanceKey(owner, spender), &a); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &Allowance{Owner: owner, Spender: spender}, nil
	default:
		return nil, err
	}
}
