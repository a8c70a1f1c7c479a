package vis

import "image/color"

// SeriesData is one named data series: parallel year/value slices, sorted
// by year. The chart never mutates it.
type SeriesData struct {
	Name   string
	Years  []int
	Values []float64
}

// Key identifies a datum across successive projections of the same chart,
// which is what lets a tween match up its endpoints.
type Key struct {
	Series string
	Year   int
}

// Point is a datum mapped into pixel space.
type Point struct {
	Series string
	Year   int
	Value  float64
	X, Y   float32
	Color  color.NRGBA
}

func (p Point) Key() Key {
	return Key{Series: p.Series, Year: p.Year}
}

// Snapshot is the chart state at one instant, keyed by point identity.
type Snapshot map[Key]Point

func snapshotOf(pts []Point) Snapshot {
	if len(pts) == 0 {
		return nil
	}
	s := make(Snapshot, len(pts))
	for _, p := range pts {
		s[p.Key()] = p
	}
	return s
}

// Equal reports whether two snapshots hold exactly the same points.
func (s Snapshot) Equal(o Snapshot) bool {
	if len(s) != len(o) {
		return false
	}
	for k, p := range s {
		if q, ok := o[k]; !ok || p != q {
			return false
		}
	}
	return true
}
