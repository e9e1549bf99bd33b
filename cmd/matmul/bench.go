package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/matmul/engine"
	"github.com/utkarsh5026/matmul/internal/config"
	"github.com/utkarsh5026/matmul/matrix"
)

// benchResult is the outcome of one routing policy.
type benchResult struct {
	Routing  string
	Total    time.Duration
	PerIter  time.Duration
	CellsPS  float64
	Success  bool
	ErrorMsg string
	Rank     int
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		ef         engineFlags
		size       int
		iterations int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark every routing policy on random square matrices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ef.apply(cmd, a.cfg); err != nil {
				return err
			}
			if size <= 0 || iterations <= 0 {
				return fmt.Errorf("--size and --iterations must be positive")
			}

			out := cmd.OutOrStdout()
			printSectionHeader(out, "MATMUL BENCHMARK",
				fmt.Sprintf("  %dx%d float64 · %d iterations · %d workers", size, size, iterations, a.cfg.Workers))

			rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
			lhs, rhs := randomSquare(rng, size), randomSquare(rng, size)
			want, err := matrix.MultiplyNaive(lhs, rhs)
			if err != nil {
				return err
			}

			routings := engine.Routings()
			bar := makeProgressBar(cmd.ErrOrStderr(), len(routings)*iterations)

			results := make([]benchResult, 0, len(routings))
			for _, r := range routings {
				cfg := *a.cfg
				cfg.Routing = r.String()
				results = append(results, benchRouting(cmd.Context(), &cfg, lhs, rhs, want, iterations, func() {
					_ = bar.Add(1)
				}))
			}
			_ = bar.Finish()

			return renderBench(out, results, size*size)
		},
	}

	ef.register(cmd)
	cmd.Flags().IntVar(&size, "size", 64, "matrix dimension N (N×N)")
	cmd.Flags().IntVar(&iterations, "iterations", 5, "multiplications per routing policy")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "random seed for the operands")

	return cmd
}

// benchRouting runs iterations products on one engine and checks each result.
func benchRouting(
	ctx context.Context,
	cfg *config.Config,
	a, b, want *matrix.Matrix[float64],
	iterations int,
	tick func(),
) benchResult {
	res := benchResult{Routing: cfg.Routing}
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := cfg.EngineOptions(nil)
	if err != nil {
		res.ErrorMsg = err.Error()
		return res
	}

	eng := engine.NewEngine[float64](opts...)
	if err := eng.Start(ctx); err != nil {
		res.ErrorMsg = err.Error()
		return res
	}
	defer func() { _ = eng.Shutdown(0) }()

	start := time.Now()
	for i := range iterations {
		got, err := eng.Multiply(ctx, a, b)
		tick()
		if err != nil {
			res.ErrorMsg = fmt.Sprintf("iteration %d: %v", i, err)
			return res
		}
		if !approxEqual(got, want, 1e-9) {
			res.ErrorMsg = fmt.Sprintf("iteration %d: result differs from the sequential product", i)
			return res
		}
	}
	res.Total = time.Since(start)
	res.PerIter = res.Total / time.Duration(iterations)
	res.CellsPS = float64(a.Rows()*b.Cols()*iterations) / res.Total.Seconds()
	res.Success = true
	return res
}

func randomSquare(rng *rand.Rand, n int) *matrix.Matrix[float64] {
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return matrix.MustNew(data, n, n)
}

// approxEqual compares element-wise with a relative tolerance. The engine and
// the sequential loop sum in the same order, but the compiler may fuse
// multiply-adds differently in each.
func approxEqual(a, b *matrix.Matrix[float64], tol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		diff := math.Abs(ad[i] - bd[i])
		scale := math.Max(1, math.Max(math.Abs(ad[i]), math.Abs(bd[i])))
		if diff > tol*scale {
			return false
		}
	}
	return true
}
