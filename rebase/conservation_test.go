package rebase

import (
	stdmath "math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/ammcore-go/shared"
)

func q64Ratio(num, den int64) *big.Int {
	v := new(big.Int).Mul(shared.OneQ64, big.NewInt(num))
	return v.Quo(v, big.NewInt(den))
}

func TestVerifyConservation(t *testing.T) {
	factors := []*big.Int{q64Ratio(1, 1), q64Ratio(1, 1)}
	weights := []uint32{5000, 5000}

	t.Run("within tolerance", func(t *testing.T) {
		res, err := VerifyConservation(shared.ConservationProof{
			GrowthFactors:  factors,
			Weights:        weights,
			WeightedLogSum: -999_999,
			ToleranceBps:   10,
		})
		require.NoError(t, err)
		assert.True(t, res.IsValid)
		assert.Equal(t, int64(1_000_000), res.MaxDeviation)
		assert.Equal(t, uint64(999_999), res.Deviation)
	})

	t.Run("rejects value creation", func(t *testing.T) {
		res, err := VerifyConservation(shared.ConservationProof{
			GrowthFactors:  factors,
			Weights:        weights,
			WeightedLogSum: 1_000_001,
			ToleranceBps:   10,
		})
		require.NoError(t, err)
		assert.False(t, res.IsValid)
	})

	t.Run("extreme log sum", func(t *testing.T) {
		res, err := VerifyConservation(shared.ConservationProof{
			GrowthFactors:  factors,
			Weights:        weights,
			WeightedLogSum: stdmath.MinInt64,
			ToleranceBps:   10,
		})
		require.NoError(t, err)
		assert.False(t, res.IsValid)
		assert.Equal(t, uint64(1)<<63, res.Deviation)
	})

	t.Run("malformed proofs", func(t *testing.T) {
		cases := []struct {
			name  string
			proof shared.ConservationProof
			err   error
		}{
			{"empty", shared.ConservationProof{}, shared.ErrInvalidInput},
			{"length mismatch", shared.ConservationProof{GrowthFactors: factors, Weights: []uint32{10000}}, shared.ErrInvalidInput},
			{"weights do not sum", shared.ConservationProof{GrowthFactors: factors, Weights: []uint32{5000, 4999}}, shared.ErrInvalidWeights},
			{"zero factor", shared.ConservationProof{GrowthFactors: []*big.Int{big.NewInt(0), q64Ratio(1, 1)}, Weights: weights}, shared.ErrInvalidParameter},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := VerifyConservation(tc.proof)
				assert.ErrorIs(t, err, tc.err)
			})
		}
	})
}

func TestComputeWeightedLogSum(t *testing.T) {
	sum, err := ComputeWeightedLogSum([]*big.Int{q64Ratio(2, 1), q64Ratio(1, 2)}, []uint32{5000, 5000})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)

	sum, err = ComputeWeightedLogSum([]*big.Int{q64Ratio(2, 1)}, []uint32{10000})
	require.NoError(t, err)
	assert.Equal(t, int64(693147181), sum)

	_, err = ComputeWeightedLogSum([]*big.Int{q64Ratio(2, 1)}, []uint32{9000})
	assert.ErrorIs(t, err, shared.ErrInvalidWeights)
}

func TestApplyGrowthFactors(t *testing.T) {
	factors := []*big.Int{q64Ratio(101, 100), q64Ratio(99, 100)}
	weights := []uint32{5000, 5000}

	logSum, err := ComputeWeightedLogSum(factors, weights)
	require.NoError(t, err)
	assert.InDelta(t, -50003, logSum, 1)

	proof := shared.ConservationProof{
		GrowthFactors:  factors,
		Weights:        weights,
		WeightedLogSum: logSum,
		ToleranceBps:   1,
	}

	t.Run("scales indexes", func(t *testing.T) {
		out, err := ApplyGrowthFactors([]*big.Int{big.NewInt(1000), big.NewInt(1000)}, proof)
		require.NoError(t, err)
		assert.Equal(t, "1009", out[0].String())
		assert.Equal(t, "989", out[1].String())
	})

	t.Run("refuses an invalid proof", func(t *testing.T) {
		bad := proof
		bad.WeightedLogSum = 200_000
		_, err := ApplyGrowthFactors([]*big.Int{big.NewInt(1000), big.NewInt(1000)}, bad)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("index count mismatch", func(t *testing.T) {
		_, err := ApplyGrowthFactors([]*big.Int{big.NewInt(1000)}, proof)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}
