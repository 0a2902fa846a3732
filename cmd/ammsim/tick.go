package main

import (
	"math/big"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ammmath "github.com/krazyTry/ammcore-go/math"
	"github.com/krazyTry/ammcore-go/u128"
)

type tickOutput struct {
	Tick      int32           `json:"tick"`
	SqrtPrice string          `json:"sqrt_price"`
	Price     decimal.Decimal `json:"price"`
}

func newTickCmd(opts *rootOptions) *cobra.Command {
	var (
		tick      int32
		sqrtPrice string
		decimalsA int32
		decimalsB int32
	)
	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Convert between a tick and its Q64.64 sqrt price",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				out tickOutput
				sp  *big.Int
				err error
			)
			if cmd.Flags().Changed("sqrt-price") {
				if sp, err = u128.Parse(sqrtPrice); err != nil {
					return errors.Wrapf(err, "sqrt price %q", sqrtPrice)
				}
				if out.Tick, err = ammmath.GetTickAtSqrtPrice(sp); err != nil {
					return err
				}
			} else {
				if sp, err = ammmath.GetSqrtPriceAtTick(tick); err != nil {
					return err
				}
				out.Tick = tick
			}
			out.SqrtPrice = sp.String()
			out.Price = ammmath.SqrtPriceX64ToPrice(sp, decimalsA, decimalsB)

			opts.log.Info("tick conversion",
				zap.Int32("tick", out.Tick),
				zap.String("sqrt_price", out.SqrtPrice))
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int32Var(&tick, "tick", 0, "tick index")
	cmd.Flags().StringVar(&sqrtPrice, "sqrt-price", "", "Q64.64 sqrt price, takes precedence over --tick")
	cmd.Flags().Int32Var(&decimalsA, "decimals-a", 0, "decimals of token A")
	cmd.Flags().Int32Var(&decimalsB, "decimals-b", 0, "decimals of token B")
	return cmd
}
