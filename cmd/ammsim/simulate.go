package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/krazyTry/ammcore-go/simulator"
)

type ownerFees struct {
	Owner   string `json:"owner"`
	Amount0 uint64 `json:"amount_0"`
	Amount1 uint64 `json:"amount_1"`
}

type simulateOutput struct {
	Events  int               `json:"events"`
	Summary simulator.Summary `json:"summary"`
	TWAP    *int32            `json:"twap_tick,omitempty"`
	Fees    []ownerFees       `json:"fees"`
}

func newSimulateCmd(opts *rootOptions) *cobra.Command {
	var snapshotPath string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Load a pool snapshot, replay its events and report fees owed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(snapshotPath)
			if err != nil {
				return errors.Wrapf(err, "unable to read snapshot %s", snapshotPath)
			}
			pool, err := simulator.LoadSnapshot(opts.log, opts.cfg.Simulator, data)
			if err != nil {
				return err
			}
			applied, err := pool.Replay(data)
			if err != nil {
				return err
			}

			out := simulateOutput{Events: applied}
			if tick, err := pool.TWAP(pool.LastTimestamp()); err == nil {
				out.TWAP = &tick
			} else {
				opts.log.Debug("twap unavailable", zap.Error(err))
			}
			for _, owner := range pool.Owners() {
				a0, a1, err := pool.QuoteFees(owner)
				if err != nil {
					return err
				}
				out.Fees = append(out.Fees, ownerFees{Owner: owner.String(), Amount0: a0, Amount1: a1})
			}
			out.Summary = pool.Summary()

			opts.log.Info("simulation complete",
				zap.String("pool", out.Summary.Address),
				zap.Int("events", applied),
				zap.Int("positions", out.Summary.Positions))
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "path to a JSON pool snapshot")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
