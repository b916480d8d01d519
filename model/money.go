package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a naira value in kobo (minor units).
type Amount int64

// maxAmount caps parsed input well below int64 overflow.
var maxAmount = decimal.New(1, 13)

// Naira converts whole naira to an Amount.
func Naira(n int64) Amount {
	return Amount(n * 100)
}

// String formats the amount as naira with two decimals, e.g. ₦4500.00.
func (a Amount) String() string {
	return "₦" + decimal.New(int64(a), -2).StringFixed(2)
}

// ParseAmount parses user input in naira ("500", "12.50").
// Zero, negative, non-numeric and sub-kobo values are rejected.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, Wrap(CodeInvalidAmount, "amount is not a number", err)
	}
	if !d.IsPositive() || d.GreaterThan(maxAmount) {
		return 0, Errorf(CodeInvalidAmount, "amount %s out of range", d.String())
	}
	kobo := d.Shift(2)
	if !kobo.IsInteger() {
		return 0, Errorf(CodeInvalidAmount, "amount %s has more than two decimals", d.String())
	}
	return Amount(kobo.IntPart()), nil
}
