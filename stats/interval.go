package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidInput is returned for empty samples, samples holding NaN or
// infinite values, and negative or non-finite z multipliers.
var ErrInvalidInput = errors.New("invalid input")

// Sample is one column of repeated-trial observations for a single
// parameter.
type Sample []float64

// IntervalResult is a point estimate and the symmetric margin around it.
type IntervalResult struct {
	Center    float64 `yaml:"center"`
	HalfWidth float64 `yaml:"half_width"`
}

func (r IntervalResult) Lower() float64 {
	return r.Center - r.HalfWidth
}

func (r IntervalResult) Upper() float64 {
	return r.Center + r.HalfWidth
}

func (r IntervalResult) String() string {
	return fmt.Sprintf("%.6g ± %.6g", r.Center, r.HalfWidth)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EstimateInterval computes the mean of the sample and the half-width
// z * sigma / sqrt(N), where sigma is the population standard deviation
// (divisor N, not N-1).
func EstimateInterval(sample Sample, z float64) (IntervalResult, error) {
	if len(sample) == 0 {
		return IntervalResult{}, fmt.Errorf("%w: empty sample", ErrInvalidInput)
	}
	if !finite(z) || z < 0 {
		return IntervalResult{}, fmt.Errorf("%w: z-score %v", ErrInvalidInput, z)
	}
	if v, idx, ok := lo.FindIndexOf(sample, func(v float64) bool {
		return !finite(v)
	}); ok {
		return IntervalResult{}, fmt.Errorf("%w: non-finite value %v at index %d",
			ErrInvalidInput, v, idx)
	}

	mean, stdev := stat.PopMeanStdDev(sample, nil)
	return IntervalResult{
		Center:    mean,
		HalfWidth: z * stdev / math.Sqrt(float64(len(sample))),
	}, nil
}

// EstimateColumns runs EstimateInterval over every column. The error
// names the first column that failed.
func EstimateColumns(cols []Sample, z float64) ([]IntervalResult, error) {
	results := make([]IntervalResult, len(cols))
	for i, c := range cols {
		r, err := EstimateInterval(c, z)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		results[i] = r
	}
	return results, nil
}
