package vis

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaleRoundTrip(t *testing.T) {
	type testcase struct {
		name               string
		domainLo, domainHi float64
		rangeLo, rangeHi   float32
	}
	for _, tc := range []testcase{
		{name: "years", domainLo: 1960, domainHi: 2023, rangeLo: 0, rangeHi: 800},
		{name: "population", domainLo: 2.5e6, domainHi: 1.4e9, rangeLo: 600, rangeHi: 0},
		{name: "small span", domainLo: 0.2, domainHi: 0.9, rangeLo: 0, rangeHi: 120},
		{name: "negative values", domainLo: -40, domainHi: 12, rangeLo: 0, rangeHi: 300},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScale(tc.domainLo, tc.domainHi, tc.rangeLo, tc.rangeHi)
			span := s.DomainMax - s.DomainMin
			for i := 0; i <= 20; i++ {
				v := s.DomainMin + span*float64(i)/20
				got := s.Invert(s.Project(v))
				// Pixel coordinates are float32, so allow relative error on
				// that order.
				require.InDelta(t, v, got, span*1e-4, "round trip of %v", v)
			}
		})
	}
}

func TestScaleNicesEndpoints(t *testing.T) {
	s := NewScale(1963.2, 2017.8, 0, 600)
	require.Equal(t, 1960.0, s.DomainMin)
	require.Equal(t, 2020.0, s.DomainMax)
	require.Equal(t, 5.0, s.Step())

	ticks := s.Ticks()
	require.Equal(t, 13, len(ticks))
	require.Equal(t, s.DomainMin, ticks[0])
	require.Equal(t, s.DomainMax, ticks[len(ticks)-1])

	// Same domain and range must always produce the same scale.
	require.Equal(t, s, NewScale(1963.2, 2017.8, 0, 600))
}

func TestScaleDegenerateDomain(t *testing.T) {
	s := NewScale(7, 7, 0, 100)
	require.Less(t, s.DomainMin, 7.0)
	require.Greater(t, s.DomainMax, 7.0)
	require.InDelta(t, 50, s.Project(7), 1e-3)
}

func TestScaleProjectEndpoints(t *testing.T) {
	s := NewScale(0, 97, 0, 640)
	require.Equal(t, s.RangeMin, s.Project(s.DomainMin))
	require.Equal(t, s.RangeMax, s.Project(s.DomainMax))

	// Flipped ranges put the domain minimum at the bottom of the canvas.
	flipped := NewScale(0, 97, 480, 0)
	require.Equal(t, float32(480), flipped.Project(flipped.DomainMin))
	require.Equal(t, float32(0), flipped.Project(flipped.DomainMax))
}

func TestScaleReversedDomainArgs(t *testing.T) {
	a := NewScale(10, 90, 0, 200)
	b := NewScale(90, 10, 0, 200)
	require.Equal(t, a, b)
}
