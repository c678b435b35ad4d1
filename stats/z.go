package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// Two-tailed z multipliers for common confidence levels.
const (
	Z95 = 1.96
	Z98 = 2.326
	Z99 = 2.576
)

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	area := (1 + (confidenceInterval / 100)) / 2
	return stdNormal.Quantile(area)
}

// ZForConfidence is ZVal with the level checked to lie strictly
// between 0 and 100.
func ZForConfidence(pct float64) (float64, error) {
	if !finite(pct) || pct <= 0 || pct >= 100 {
		return 0, fmt.Errorf("%w: confidence level %v", ErrInvalidInput, pct)
	}
	return ZVal(pct), nil
}
