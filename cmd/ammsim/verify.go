package main

import (
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/rebase"
	"github.com/krazyTry/ammcore-go/shared"
)

func parseFactors(values []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.Wrapf(shared.ErrInvalidInput, "growth factor %q", v)
		}
		out[i] = ammmath.DecimalToQ64(d)
	}
	return out, nil
}

func parseWeights(values []string) ([]uint32, error) {
	out := make([]uint32, len(values))
	for i, v := range values {
		w, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(shared.ErrInvalidInput, "weight %q", v)
		}
		out[i] = uint32(w)
	}
	return out, nil
}

func newVerifyCmd(opts *rootOptions) *cobra.Command {
	var (
		factors   []string
		weights   []string
		logSum    int64
		tolerance uint32
	)
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a rebase conservation proof",
		RunE: func(cmd *cobra.Command, _ []string) error {
			proof := shared.ConservationProof{ToleranceBps: tolerance}
			var err error
			if proof.GrowthFactors, err = parseFactors(factors); err != nil {
				return err
			}
			if proof.Weights, err = parseWeights(weights); err != nil {
				return err
			}
			if cmd.Flags().Changed("log-sum") {
				proof.WeightedLogSum = logSum
			} else if proof.WeightedLogSum, err = rebase.ComputeWeightedLogSum(proof.GrowthFactors, proof.Weights); err != nil {
				return err
			}

			result, err := rebase.VerifyConservation(proof)
			if err != nil {
				return err
			}
			opts.log.Info("conservation checked",
				zap.Bool("valid", result.IsValid),
				zap.Int64("weighted_log_sum", result.WeightedLogSum),
				zap.Uint64("deviation", result.Deviation))
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVar(&factors, "factors", nil, "growth factors as decimals, e.g. 1.01,0.99")
	cmd.Flags().StringSliceVar(&weights, "weights", nil, "weights in basis points, summing to 10000")
	cmd.Flags().Int64Var(&logSum, "log-sum", 0, "keeper supplied weighted log sum, computed when omitted")
	cmd.Flags().Uint32Var(&tolerance, "tolerance", 10, "tolerance in basis points")
	return cmd
}
