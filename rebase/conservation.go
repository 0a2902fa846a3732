package rebase

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/krazyTry/ammcore-go/decimal_math"
	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/shared"
)

// lnPrecision is the number of decimal digits kept by the off-engine log sum.
const lnPrecision = 18

// VerifyConservation checks a keeper supplied proof that the weighted log of
// the growth factors stays within tolerance of zero. The sum itself is not
// recomputed here.
func VerifyConservation(proof shared.ConservationProof) (shared.ConservationCheckResult, error) {
	if err := validateProof(proof.GrowthFactors, proof.Weights); err != nil {
		return shared.ConservationCheckResult{}, err
	}

	maxDeviation, err := ammmath.CheckedMulI64(int64(proof.ToleranceBps), shared.ConservationScale)
	if err != nil {
		return shared.ConservationCheckResult{}, err
	}
	maxDeviation /= shared.BasisPointMax

	deviation := absI64(proof.WeightedLogSum)
	return shared.ConservationCheckResult{
		IsValid:        deviation <= uint64(maxDeviation),
		WeightedLogSum: proof.WeightedLogSum,
		Deviation:      deviation,
		MaxDeviation:   maxDeviation,
	}, nil
}

func validateProof(factors []*big.Int, weights []uint32) error {
	if len(factors) == 0 || len(factors) != len(weights) {
		return shared.NewErrorInt(shared.ErrorCodeInvalidInput, int64(len(factors)))
	}
	var weightSum uint64
	for _, w := range weights {
		weightSum += uint64(w)
	}
	if weightSum != shared.BasisPointMax {
		return shared.NewError(shared.ErrorCodeInvalidWeights, new(big.Int).SetUint64(weightSum))
	}
	for _, f := range factors {
		if f == nil || f.Sign() <= 0 {
			return shared.ErrInvalidParameter
		}
	}
	return nil
}

func absI64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

// ApplyGrowthFactors scales each index by its Q64 growth factor once the
// proof verifies.
func ApplyGrowthFactors(indexes []*big.Int, proof shared.ConservationProof) ([]*big.Int, error) {
	result, err := VerifyConservation(proof)
	if err != nil {
		return nil, err
	}
	if !result.IsValid {
		return nil, shared.NewErrorInt(shared.ErrorCodeInvalidInput, proof.WeightedLogSum)
	}
	if len(indexes) != len(proof.GrowthFactors) {
		return nil, shared.NewErrorInt(shared.ErrorCodeInvalidInput, int64(len(indexes)))
	}

	out := make([]*big.Int, len(indexes))
	for i, index := range indexes {
		scaled, err := ammmath.MulDiv(index, proof.GrowthFactors[i], shared.OneQ64, shared.RoundingDown)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

// ComputeWeightedLogSum is the keeper side of the proof:
// sum(w_i / 10000 * ln(f_i / 2^64)) * ConservationScale, rounded.
func ComputeWeightedLogSum(factors []*big.Int, weights []uint32) (int64, error) {
	if err := validateProof(factors, weights); err != nil {
		return 0, err
	}
	total := decimal.Zero
	for i, f := range factors {
		ln, err := decimal_math.Ln(ammmath.Q64ToDecimal(f, -1), lnPrecision)
		if err != nil {
			return 0, err
		}
		total = total.Add(ln.Mul(decimal.NewFromInt(int64(weights[i]))))
	}
	scaled := total.Mul(decimal.NewFromInt(shared.ConservationScale)).
		Div(decimal.NewFromInt(shared.BasisPointMax)).
		Round(0)
	if !scaled.BigInt().IsInt64() {
		return 0, shared.NewError(shared.ErrorCodeConversion, scaled.BigInt())
	}
	return scaled.IntPart(), nil
}
