package vis

import "math"

// TickSpacingPx is the default target pixel distance between adjacent axis
// ticks. Hosts can request a different density via NewScaleDensity.
const TickSpacingPx = 30

// Scale maps a numeric domain onto a pixel range with an affine transform.
// The domain endpoints are widened outward to multiples of a "nice" 1-2-5
// step so that ticks land on round values. The widening is deterministic
// given the raw domain and the range's pixel extent.
type Scale struct {
	DomainMin, DomainMax float64
	RangeMin, RangeMax   float32
	step                 float64
}

// NewScale builds a scale from the data's raw domain onto the given pixel
// range. Pass rangeLo > rangeHi to flip the axis (the usual case for y,
// where pixel coordinates grow downward). A zero-span domain is expanded
// by one unit in each direction rather than dividing by zero.
func NewScale(domainLo, domainHi float64, rangeLo, rangeHi float32) Scale {
	return NewScaleDensity(domainLo, domainHi, rangeLo, rangeHi, TickSpacingPx)
}

// NewScaleDensity is NewScale with an explicit target tick spacing in
// pixels.
func NewScaleDensity(domainLo, domainHi float64, rangeLo, rangeHi float32, spacingPx float32) Scale {
	if domainHi < domainLo {
		domainLo, domainHi = domainHi, domainLo
	}
	if domainLo == domainHi {
		domainLo--
		domainHi++
	}
	if spacingPx <= 0 {
		spacingPx = TickSpacingPx
	}
	extent := rangeHi - rangeLo
	if extent < 0 {
		extent = -extent
	}
	tickCount := int(extent / spacingPx)
	if tickCount < 2 {
		tickCount = 2
	}
	step := niceStep((domainHi - domainLo) / float64(tickCount))
	return Scale{
		DomainMin: math.Floor(domainLo/step) * step,
		DomainMax: math.Ceil(domainHi/step) * step,
		RangeMin:  rangeLo,
		RangeMax:  rangeHi,
		step:      step,
	}
}

// niceStep rounds a raw step up to the nearest 1, 2 or 5 times a power of
// ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch frac := raw / mag; {
	case frac <= 1:
		return mag
	case frac <= 2:
		return 2 * mag
	case frac <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// Project maps a domain value to its pixel coordinate.
func (s Scale) Project(v float64) float32 {
	t := (v - s.DomainMin) / (s.DomainMax - s.DomainMin)
	return s.RangeMin + float32(t)*(s.RangeMax-s.RangeMin)
}

// Invert maps a pixel coordinate back to its domain value. It is the
// inverse of Project up to floating-point error.
func (s Scale) Invert(px float32) float64 {
	t := float64((px - s.RangeMin) / (s.RangeMax - s.RangeMin))
	return s.DomainMin + t*(s.DomainMax-s.DomainMin)
}

// Step returns the domain distance between adjacent ticks.
func (s Scale) Step() float64 {
	return s.step
}

// Ticks returns the tick values in increasing order. Both domain endpoints
// are always ticks because the domain was widened to step multiples.
func (s Scale) Ticks() []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := s.DomainMin + float64(i)*s.step
		if v > s.DomainMax+s.step/2 {
			break
		}
		out = append(out, v)
	}
	return out
}
