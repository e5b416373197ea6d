package token

import (
	"regexp"

	"github.com/iov-one/timelock"
	"github.com/iov-one/timelock/errors"
	"github.com/iov-one/timelock/orm"
)

var (
	isTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

	// maxDecimals keeps all amounts representable by a uint64.
	maxDecimals int32 = 18
)

var _ orm.Model = (*Wallet)(nil)

// Validate ensures the wallet is valid
func (w *Wallet) Validate() error {
	if err := w.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}

var _ orm.Model = (*Allowance)(nil)

// Validate ensures the allowance is valid
func (a *Allowance) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Spender.Validate(); err != nil {
		return errors.Wrap(err, "spender")
	}
	return nil
}

var _ orm.Model = (*Info)(nil)

// Validate ensures the token information is valid
func (i *Info) Validate() error {
	if !isTicker(i.Ticker) {
		return errors.Wrapf(errors.ErrInput, "ticker %q", i.Ticker)
	}
	if i.Decimals < 0 || i.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals %d", i.Decimals)
	}
	return nil
}

func newWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet", &Wallet{})
}

func newAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("allowance", &Allowance{})
}

func newInfoBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokeninfo", &Info{})
}

var infoKey = []byte("info")

// allowanceKey is the owner address followed by the spender address. Both
// have fixed length so the key is unambiguous.
func allowanceKey(owner, spender timelock.Address) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner...)
	return append(key, spender...)
}
