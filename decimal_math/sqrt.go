package decimal_math

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/ammcore-go/shared"
)

// Sqrt returns the square root of x computed in a big.Float of prec bits.
func Sqrt(x decimal.Decimal, prec uint) (decimal.Decimal, error) {
	if x.Sign() < 0 {
		return decimal.Zero, shared.ErrInvalidInput
	}
	if x.IsZero() {
		return decimal.Zero, nil
	}
	out, err := decimal.NewFromString(
		new(big.Float).SetPrec(prec).Sqrt(
			x.BigFloat().SetPrec(prec),
		).Text('f', -1),
	)
	if err != nil {
		return decimal.Zero, shared.ErrConversion
	}
	return out, nil
}
