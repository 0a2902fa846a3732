package u128

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/ammcore-go/shared"
)

func TestFromBig(t *testing.T) {
	v, err := FromBig(shared.OneQ64)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v.Lo)
	assert.Equal(t, uint64(1), v.Hi)
	assert.Equal(t, shared.OneQ64.String(), Uint128(v).BigInt().String())

	top := new(big.Int).Sub(shared.OneQ128, big.NewInt(1))
	v, err = FromBig(top)
	require.NoError(t, err)
	assert.Equal(t, top.String(), v.String())

	_, err = FromBig(shared.OneQ128)
	assert.ErrorIs(t, err, shared.ErrConversion)
	_, err = FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, shared.ErrConversion)
}

func TestParse(t *testing.T) {
	v, err := Parse("18446744073709551616")
	require.NoError(t, err)
	assert.Equal(t, shared.OneQ64.String(), v.String())

	v, err = Parse("79226673515401279963822778343")
	require.NoError(t, err)
	assert.Equal(t, shared.MaxSqrtPriceX64.String(), v.String())

	v, err = Parse("0x10")
	require.NoError(t, err)
	assert.Equal(t, int64(16), v.Int64())

	for _, bad := range []string{"", "abc", "12abc", "-5", "340282366920938463463374607431768211456"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, shared.ErrConversion, bad)
	}
}
