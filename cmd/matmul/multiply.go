package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/matmul/engine"
	"github.com/utkarsh5026/matmul/internal/config"
	"github.com/utkarsh5026/matmul/matrix"
	"github.com/utkarsh5026/matmul/metrics"
)

func newMultiplyCmd(a *app) *cobra.Command {
	var (
		ef          engineFlags
		lhs, rhs    string
		useFloat    bool
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "multiply two matrices",
		Example: `  matmul multiply --a "{1 2 3, 4 5 6}" --b "{10 11, 20 21, 30 31}"
  matmul multiply --float --a "{0.5 1.5}" --b "{2, 4}" --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ef.apply(cmd, a.cfg); err != nil {
				return err
			}

			reg := a.cfg.NewRegistry()
			if showMetrics && reg == nil {
				reg = metrics.NewMap()
			}

			out := cmd.OutOrStdout()
			var err error
			if useFloat {
				err = multiplyAndPrint(cmd.Context(), out, a.cfg, reg, lhs, rhs, matrix.ParseFloat)
			} else {
				err = multiplyAndPrint(cmd.Context(), out, a.cfg, reg, lhs, rhs, matrix.ParseInt)
			}
			if err != nil {
				return err
			}

			if showMetrics {
				return renderMetrics(out, reg.Snapshot())
			}
			return nil
		},
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&lhs, "a", "", "left operand, e.g. \"{1 2, 3 4}\"")
	cmd.Flags().StringVar(&rhs, "b", "", "right operand")
	cmd.Flags().BoolVar(&useFloat, "float", false, "parse elements as float64 instead of int")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print engine counters after the product")
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

func multiplyAndPrint[T matrix.Numeric](
	ctx context.Context,
	w io.Writer,
	cfg *config.Config,
	reg metrics.Registry,
	lhs, rhs string,
	parse func(string) (*matrix.Matrix[T], error),
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := parse(lhs)
	if err != nil {
		return fmt.Errorf("--a: %w", err)
	}
	b, err := parse(rhs)
	if err != nil {
		return fmt.Errorf("--b: %w", err)
	}

	opts, err := cfg.EngineOptions(reg)
	if err != nil {
		return err
	}

	c, err := engine.Multiply(ctx, a, b, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, c)
	return err
}
