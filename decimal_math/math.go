package decimal_math

import (
	"github.com/shopspring/decimal"

	"github.com/krazyTry/ammcore-go/shared"
)

func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}

// Ln is the natural log of a strictly positive x rounded to precision digits.
func Ln(x decimal.Decimal, precision int32) (decimal.Decimal, error) {
	if !x.IsPositive() {
		return decimal.Zero, shared.ErrInvalidInput
	}
	out, err := x.Ln(precision)
	if err != nil {
		return decimal.Zero, shared.ErrInvalidInput
	}
	return out, nil
}
