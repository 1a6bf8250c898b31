// Package money does checked arithmetic on amounts in the smallest currency unit.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrOverflow = errors.New("amount exceeds the supported range")

// LineTotal returns unitPrice multiplied by quantity, or ErrOverflow when the product
// does not fit in an int64.
func LineTotal(unitPrice int64, quantity int32) (int64, error) {
	return fit(decimal.NewFromInt(unitPrice).Mul(decimal.NewFromInt32(quantity)))
}

// Sum adds amounts, or returns ErrOverflow when any partial sum leaves the int64 range.
func Sum(amounts ...int64) (int64, error) {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(decimal.NewFromInt(amount))
		if _, err := fit(total); err != nil {
			return 0, err
		}
	}
	return fit(total)
}

func fit(d decimal.Decimal) (int64, error) {
	n := d.BigInt()
	if !n.IsInt64() {
		return 0, ErrOverflow
	}
	return n.Int64(), nil
}
