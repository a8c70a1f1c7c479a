package vis

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Ramp endpoints, low to high. Hcl blending between them keeps every stop
// perceptually even.
const (
	rampLowHex  = "#2b7fa8"
	rampHighHex = "#a4633a"
)

// Ramp returns a sequential color ramp over the given value range. The
// ramp is a pure function of the range: callers must rebuild it from the
// active dataset view's value range whenever that view changes, which is
// what keeps colors dataset-relative instead of going stale.
func Ramp(lo, hi float64) func(v float64) color.NRGBA {
	low, _ := colorful.Hex(rampLowHex)
	high, _ := colorful.Hex(rampHighHex)
	span := hi - lo
	if span <= 0 {
		span = 1
	}
	return func(v float64) color.NRGBA {
		t := (v - lo) / span
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		c := low.BlendHcl(high, t).Clamped()
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
}

// Project maps every point of the given series into pixel space through the
// scale pair. It is a pure function of its inputs. Each series is colored
// by the mean of its values on a ramp keyed to the value range across all
// the series passed in, so isolating a subset recolors it relative to that
// subset.
func Project(active []SeriesData, sx, sy Scale) []Point {
	if len(active) == 0 {
		return nil
	}
	lo, hi, seen := valueRange(active)
	if !seen {
		return nil
	}
	ramp := Ramp(lo, hi)
	var out []Point
	for _, s := range active {
		c := ramp(mean(s.Values))
		for i, year := range s.Years {
			v := s.Values[i]
			out = append(out, Point{
				Series: s.Name,
				Year:   year,
				Value:  v,
				X:      sx.Project(float64(year)),
				Y:      sy.Project(v),
				Color:  c,
			})
		}
	}
	return out
}

// Extents returns the year and value bounds across the given series. ok is
// false when there are no points at all.
func Extents(active []SeriesData) (yearLo, yearHi int, valLo, valHi float64, ok bool) {
	for _, s := range active {
		for i, year := range s.Years {
			v := s.Values[i]
			if !ok {
				yearLo, yearHi = year, year
				valLo, valHi = v, v
				ok = true
				continue
			}
			yearLo = min(yearLo, year)
			yearHi = max(yearHi, year)
			valLo = min(valLo, v)
			valHi = max(valHi, v)
		}
	}
	return yearLo, yearHi, valLo, valHi, ok
}

func valueRange(active []SeriesData) (lo, hi float64, ok bool) {
	_, _, lo, hi, ok = Extents(active)
	return lo, hi, ok
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
