package token

import (
	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
)

// GenesisKey is the genesis options key holding the token state.
const GenesisKey = "token"

// Genesis is used to parse the json from genesis file
type Genesis struct {
	Ticker     string             `json:"ticker"`
	Name       string             `json:"name"`
	Decimals   int32              `json:"decimals"`
	Balances   []GenesisBalance   `json:"balances"`
	Allowances []GenesisAllowance `json:"allowances"`
}

// GenesisBalance is an amount minted for the address at start.
type GenesisBalance struct {
	Address timelock.Address `json:"address"`
	Amount  uint64           `json:"amount"`
}

// GenesisAllowance is an allowance granted at start.
type GenesisAllowance struct {
	Owner   timelock.Address `json:"owner"`
	Spender timelock.Address `json:"spender"`
	Amount  uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ timelock.Initializer = Initializer{}

// FromGenesis will parse initial token state from genesis and save it to
// the database. Missing token options leave the store untouched.
func (Initializer) FromGenesis(opts timelock.Options, db timelock.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(GenesisKey, &gen); err != nil {
		return err
	}
	if gen.Ticker == "" {
		return nil
	}

	ctrl := NewController()
	if err := ctrl.SetInfo(db, gen.Ticker, gen.Name, gen.Decimals); err != nil {
		return errors.Wrap(err, "token info")
	}
	for i, b := range gen.Balances {
		if err := ctrl.Mint(db, b.Address, b.Amount); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
	}
	for i, a := range gen.Allowances {
		if err := ctrl.Approve(db, a.Owner, a.Spender, a.Amount); err != nil {
			return errors.Wrapf(err, "allowance %d", i)
		}
	}
	return nil
}
