package stats

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores   []int
		mean     float64
		stdev    float64
		popStdev float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638, 4.898979485566356},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891, 35.04226020107721},
		{[]int{1}, 1, 0, 0},
		{[]int{}, 0, 0, 0},
		{[]int{1, 1}, 1, 0, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.Push(float64(score))
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.True(FuzzyEqual(s.PopStdev(), c.popStdev))
	}
}

func TestStatisticIntervalMatchesEstimate(t *testing.T) {
	is := is.New(t)
	sample := Sample{0.21, 0.25, 0.23, 0.27, 0.24, 0.22}
	s := &Statistic{}
	for _, v := range sample {
		s.Push(v)
	}
	running, err := s.Interval(Z95)
	is.NoErr(err)
	direct, err := EstimateInterval(sample, Z95)
	is.NoErr(err)
	is.True(FuzzyEqual(running.Center, direct.Center))
	is.True(FuzzyEqual(running.HalfWidth, direct.HalfWidth))
	is.True(FuzzyEqual(direct.HalfWidth, 0.015779499123628506))
}

func TestStatisticIntervalEmpty(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	_, err := s.Interval(Z95)
	is.True(err == ErrInvalidInput)
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(FuzzyEqual(ZVal(95), 1.959963984540054))
	is.True(FuzzyEqual(ZVal(99), 2.5758293035489004))
	is.True(ZVal(98) > ZVal(95))
}

func TestZForConfidence(t *testing.T) {
	is := is.New(t)
	z, err := ZForConfidence(95)
	is.NoErr(err)
	is.True(FuzzyEqual(z, ZVal(95)))
	for _, bad := range []float64{0, 100, -5, 150} {
		_, err := ZForConfidence(bad)
		is.True(errors.Is(err, ErrInvalidInput))
	}
}
