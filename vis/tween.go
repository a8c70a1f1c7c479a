package vis

import "time"

// Tween animates between two chart snapshots over a fixed duration.
//
// Keys present in both snapshots interpolate linearly in x, y and value.
// A key present only in the destination appears at its destination
// immediately, and a key present only in the source drops immediately;
// there is no fade in either direction. Color always comes from the
// destination, because the color ramp is already relative to the
// destination's dataset view and blending two ramps would resurrect stale
// coloring.
//
// Identical endpoint snapshots settle without producing any intermediate
// frames.
type Tween struct {
	Previous, Next Snapshot
	Start          time.Time
	Duration       time.Duration
	settled        bool
}

func NewTween(previous, next Snapshot, start time.Time, duration time.Duration) *Tween {
	tw := &Tween{
		Previous: previous,
		Next:     next,
		Start:    start,
		Duration: duration,
	}
	if duration <= 0 || previous.Equal(next) {
		tw.settled = true
	}
	return tw
}

// At returns the snapshot for the given instant and whether the tween has
// settled. At the start it returns Previous values exactly for matched
// keys; at or after Start+Duration it returns Next exactly, and every
// later call short-circuits to Next.
func (tw *Tween) At(now time.Time) (Snapshot, bool) {
	if tw.settled {
		return tw.Next, true
	}
	frac := float32(now.Sub(tw.Start)) / float32(tw.Duration)
	if frac >= 1 {
		tw.settled = true
		return tw.Next, true
	}
	if frac < 0 {
		frac = 0
	}
	out := make(Snapshot, len(tw.Next))
	for key, next := range tw.Next {
		prev, ok := tw.Previous[key]
		if !ok {
			out[key] = next
			continue
		}
		out[key] = Point{
			Series: next.Series,
			Year:   next.Year,
			Value:  lerp64(prev.Value, next.Value, float64(frac)),
			X:      lerp32(prev.X, next.X, frac),
			Y:      lerp32(prev.Y, next.Y, frac),
			Color:  next.Color,
		}
	}
	return out, false
}

// Done reports whether the tween has settled on Next.
func (tw *Tween) Done() bool {
	return tw.settled
}

func lerp32(a, b, t float32) float32 {
	return a + (b-a)*t
}

func lerp64(a, b, t float64) float64 {
	return a + (b-a)*t
}
