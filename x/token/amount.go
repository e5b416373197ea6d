package token

import (
	"math"
	"math/big"

	"github.com/iov-one/timelock/errors"
	"github.com/shopspring/decimal"
)

var maxAmount = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// ParseAmount converts a human readable amount, for example "12.5", into the
// number of base units. An amount that cannot be expressed in base units
// with given precision is rejected.
func ParseAmount(s string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "amount %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "negative amount %q", s)
	}
	units := d.Shift(decimals)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(errors.ErrInvalidAmount, "amount %q has more than %d fractional digits", s, decimals)
	}
	if units.GreaterThan(maxAmount) {
		return 0, errors.Wrapf(errors.ErrOverflow, "amount %q", s)
	}
	return units.BigInt().Uint64(), nil
}

// FormatAmount is the reverse of ParseAmount.
func FormatAmount(units uint64, decimals int32) string {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(units), -decimals)
	return d.StringFixed(decimals)
}
