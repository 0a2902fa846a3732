package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/krazyTry/ammcore-go/config"
	"github.com/krazyTry/ammcore-go/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string

	cfg config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "ammsim",
		Short:         "Fixed point AMM accounting tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if opts.log != nil {
				opts.log.AtExit()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level")

	cmd.AddCommand(
		newTickCmd(opts),
		newTranchesCmd(opts),
		newSimulateCmd(opts),
		newVerifyCmd(opts),
	)
	return cmd
}

func (opts *rootOptions) setup() error {
	cfg := config.NewDefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	log, err := logging.NewLoggerFromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	opts.cfg = cfg
	opts.log = log.Named("ammsim")
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
