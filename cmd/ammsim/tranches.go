package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/ammcore-go/helpers"
	"github.com/krazyTry/ammcore-go/shared"
)

type trancheOutput struct {
	TickLower       int32  `json:"tick_lower"`
	TickUpper       int32  `json:"tick_upper"`
	LiquidityWeight uint16 `json:"liquidity_weight"`
	FeeTierBps      uint16 `json:"fee_tier_bps"`
	Amount0         uint64 `json:"amount_0"`
	Amount1         uint64 `json:"amount_1"`
}

func parseWidthGrowthMode(s string) (shared.WidthGrowthMode, error) {
	switch s {
	case "linear":
		return shared.WidthGrowthModeLinear, nil
	case "exponential":
		return shared.WidthGrowthModeExponential, nil
	default:
		return 0, errors.Wrapf(shared.ErrInvalidParameter, "width growth mode %q", s)
	}
}

func newTranchesCmd(opts *rootOptions) *cobra.Command {
	var (
		params shared.CalculateTranchesParams
		mode   string
		total0 uint64
		total1 uint64
	)
	cmd := &cobra.Command{
		Use:   "tranches",
		Short: "Lay out bonding curve tranches and split deposits across them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := parseWidthGrowthMode(mode)
			if err != nil {
				return err
			}
			params.WidthGrowthMode = m
			if !cmd.Flags().Changed("spacing") {
				params.TickSpacing = opts.cfg.Simulator.TickSpacing
			}

			tranches, err := helpers.CalculateTranches(params)
			if err != nil {
				return err
			}
			allocations, err := helpers.DistributeLiquidityWithRemainder(total0, total1, tranches)
			if err != nil {
				return err
			}

			out := make([]trancheOutput, len(tranches))
			for i, t := range tranches {
				out[i] = trancheOutput{
					TickLower:       t.TickLower,
					TickUpper:       t.TickUpper,
					LiquidityWeight: t.LiquidityWeight,
					FeeTierBps:      t.FeeTierBps,
					Amount0:         allocations[i].Amount0,
					Amount1:         allocations[i].Amount1,
				}
			}
			opts.log.Info("tranches computed",
				zap.Int32("base_tick", params.BaseTick),
				zap.Int("count", len(out)),
				zap.Stringer("mode", params.WidthGrowthMode))
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int32Var(&params.BaseTick, "base-tick", 0, "lowest tick of the curve")
	cmd.Flags().Uint8Var(&params.NumTranches, "count", 5, "number of tranches")
	cmd.Flags().Int32Var(&params.TickSpacing, "spacing", 0, "tick spacing, defaults to the simulator configuration")
	cmd.Flags().StringVar(&mode, "mode", "linear", "width growth: linear or exponential")
	cmd.Flags().Uint32Var(&params.RangeMultiplier, "multiplier", 200, "exponential width multiplier in percent")
	cmd.Flags().Uint16Var(&params.BaseFeeBps, "fee", 30, "base fee tier in basis points")
	cmd.Flags().Uint64Var(&total0, "total0", 0, "token A amount to distribute")
	cmd.Flags().Uint64Var(&total1, "total1", 0, "token B amount to distribute")
	return cmd
}
