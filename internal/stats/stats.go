// Package stats estimates the distributions of dice expressions by repeated
// evaluation.
package stats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/zephyrtronium/dice"
)

// Quantiles are the cumulative probabilities reported in a Summary.
var Quantiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// Summary describes the results of evaluating an expression many times.
type Summary struct {
	// N is the number of evaluations.
	N      int
	Min    int64
	Max    int64
	Mean   float64
	StdDev float64
	// Quantiles holds the empirical quantile for each of the package-level
	// Quantiles, in the same order.
	Quantiles []float64
}

// checkEvery is the number of evaluations between context checks.
const checkEvery = 1024

// Simulate evaluates e n times with dice rolled from src and summarizes the
// results. An arithmetic error on any evaluation stops the simulation. If src
// is nil, rolls use the global generator.
func Simulate(ctx context.Context, e *dice.Expr, n int, src dice.Source) (Summary, error) {
	if n <= 0 {
		return Summary{}, fmt.Errorf("stats: need a positive number of evaluations, not %d", n)
	}
	r := dice.NewRoller(src)
	x := make([]float64, n)
	s := Summary{N: n, Min: math.MaxInt64, Max: math.MinInt64}
	for i := range x {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Summary{}, err
			}
		}
		v, err := r.TryEval(e)
		if err != nil {
			return Summary{}, fmt.Errorf("stats: evaluation %d: %w", i+1, err)
		}
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		x[i] = float64(v)
	}
	sort.Float64s(x)
	s.Mean, s.StdDev = stat.MeanStdDev(x, nil)
	if n == 1 {
		s.StdDev = 0
	}
	s.Quantiles = make([]float64, len(Quantiles))
	for i, p := range Quantiles {
		s.Quantiles[i] = stat.Quantile(p, stat.Empirical, x, nil)
	}
	return s, nil
}

// IsArithmetic reports whether err stopped a simulation because of an
// arithmetic error in the expression.
func IsArithmetic(err error) bool {
	var ae dice.ArithmeticError
	return errors.As(err, &ae)
}
