package main

import (
	"github.com/spf13/cobra"
	"github.com/utkarsh5026/matmul/internal/config"
)

// app carries state shared by every subcommand.
type app struct {
	configFile string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "matmul",
		Short:         "concurrent dense matrix multiplication",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file (flags override it)")

	rootCmd.AddCommand(newMultiplyCmd(a))
	rootCmd.AddCommand(newBenchCmd(a))
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func (a *app) loadConfig() error {
	if a.configFile == "" {
		a.cfg = config.DefaultConfig()
		return nil
	}
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// engineFlags are the engine settings every computing subcommand accepts.
type engineFlags struct {
	workers int
	routing string
}

func (f *engineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of workers (default from config)")
	cmd.Flags().StringVar(&f.routing, "routing", "", "routing policy: round-robin, shared or least-loaded")
}

// apply overrides cfg with the flags the user actually set.
func (f *engineFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}
	if cmd.Flags().Changed("routing") {
		cfg.Routing = f.routing
	}
	return cfg.Validate()
}
