package u128

import (
	"fmt"
	"math/big"
	"strings"

	binary "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/krazyTry/ammcore-go/shared"
)

type Uint128 binary.Uint128

func (u *Uint128) Scan(s fmt.ScanState, ch rune) error {
	i := new(big.Int)
	if err := i.Scan(s, ch); err != nil {
		return err
	}
	v, err := FromBig(i)
	if err != nil {
		return err
	}
	u.Lo = v.Lo
	u.Hi = v.Hi
	return nil
}

func (u Uint128) BigInt() *big.Int {
	return binary.Uint128(u).BigInt()
}

// FromBig narrows v into a binary.Uint128, failing with ErrConversion
// when v is negative or wider than 128 bits.
func FromBig(v *big.Int) (binary.Uint128, error) {
	if v == nil {
		return binary.Uint128{}, nil
	}
	if v.Sign() < 0 || v.BitLen() > 128 {
		return binary.Uint128{}, shared.NewError(shared.ErrorCodeConversion, v)
	}
	lo := new(big.Int).And(v, shared.U64Max).Uint64()
	hi := new(big.Int).Rsh(v, 64).Uint64()
	return binary.Uint128{Lo: lo, Hi: hi}, nil
}

// Parse reads a base-10 (or 0x prefixed) u128 literal. The whole string
// must be consumed.
func Parse(num string) (*big.Int, error) {
	var v Uint128
	r := strings.NewReader(num)
	if _, err := fmt.Fscan(r, &v); err != nil {
		if errors.Is(err, shared.ErrConversion) {
			return nil, err
		}
		return nil, shared.ErrConversion
	}
	if r.Len() != 0 {
		return nil, shared.ErrConversion
	}
	return v.BigInt(), nil
}
