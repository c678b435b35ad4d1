package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates a running mean and variance over a stream of
// observations, one column of the estimates table at a time.
type Statistic struct {
	totalIterations int
	last            float64

	// For Welford's algorithm:
	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
		s.newS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

// Variance is the sample variance (divisor N-1).
func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// PopVariance is the population variance (divisor N).
func (s *Statistic) PopVariance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations)
}

func (s *Statistic) PopStdev() float64 {
	return math.Sqrt(s.PopVariance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

// Interval returns the same result EstimateInterval would return for
// the pushed values. It does not check for non-finite input.
func (s *Statistic) Interval(z float64) (IntervalResult, error) {
	if s.totalIterations == 0 {
		return IntervalResult{}, ErrInvalidInput
	}
	return IntervalResult{
		Center:    s.Mean(),
		HalfWidth: z * s.PopStdev() / math.Sqrt(float64(s.totalIterations)),
	}, nil
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}
