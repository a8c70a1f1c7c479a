package vis

import (
	"image/color"
	"testing"
	"time"

	"gioui.org/f32"
	"github.com/stretchr/testify/require"
)

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	clears    int
	polylines [][]f32.Point
	circles   []f32.Point
}

func (r *recordingSurface) Clear(size f32.Point) {
	r.clears++
}

func (r *recordingSurface) Polyline(pts []f32.Point, c color.NRGBA, width float32) {
	cp := make([]f32.Point, len(pts))
	copy(cp, pts)
	r.polylines = append(r.polylines, cp)
}

func (r *recordingSurface) FillCircle(center f32.Point, radius float32, c color.NRGBA) {
	r.circles = append(r.circles, center)
}

func twoSeries() []SeriesData {
	return []SeriesData{
		{Name: "X", Years: []int{1960, 1961}, Values: []float64{100, 200}},
		{Name: "Y", Years: []int{1960, 1961}, Values: []float64{50, 60}},
	}
}

func newTestController() (*Controller, *time.Time) {
	now := time.Unix(0, 0)
	c := NewController(100 * time.Millisecond)
	c.now = func() time.Time { return now }
	c.Resize(800, 600)
	return c, &now
}

func seriesNames(pts []Point) map[string]bool {
	out := map[string]bool{}
	for _, p := range pts {
		out[p.Series] = true
	}
	return out
}

func TestClickIsolatesAndReverts(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(twoSeries())
	require.Equal(t, 4, len(c.Drawn()))

	// Hover a point belonging to X by pointing exactly at it.
	var target Point
	for _, p := range c.Drawn() {
		if p.Series == "X" && p.Year == 1960 {
			target = p
		}
	}
	c.OnMove(target.X, target.Y)
	hovered, ok := c.Hovered()
	require.True(t, ok)
	require.Equal(t, target.Key(), hovered.Key())

	c.OnClick()
	require.Equal(t, "X", c.Isolated())
	// Series absent from the destination drop immediately, so only X is
	// drawn even before the transition settles.
	require.Equal(t, map[string]bool{"X": true}, seriesNames(c.Drawn()))
	require.Equal(t, 2, len(c.Drawn()))

	// A second click reverts to the full view without needing a hover.
	c.OnClick()
	require.Equal(t, "", c.Isolated())
	require.Equal(t, map[string]bool{"X": true, "Y": true}, seriesNames(c.Drawn()))
}

func TestClickWithoutHoverOnFullViewIsNoop(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(twoSeries())
	c.OnLeave()
	c.OnClick()
	require.Equal(t, "", c.Isolated())
	require.Equal(t, 4, len(c.Drawn()))
	require.False(t, c.Animating())
}

func TestTransitionAnimatesAndSettlesOnce(t *testing.T) {
	c, now := newTestController()
	settles := 0
	c.OnSettle = func() { settles++ }

	c.SetDataset(twoSeries())
	// The first dataset has nothing to animate from.
	require.False(t, c.Animating())

	var target Point
	for _, p := range c.Drawn() {
		if p.Series == "X" && p.Year == 1961 {
			target = p
		}
	}
	c.OnMove(target.X, target.Y)
	c.OnClick()
	require.True(t, c.Animating())

	*now = now.Add(50 * time.Millisecond)
	require.True(t, c.Frame(*now))
	require.Equal(t, 0, settles)

	*now = now.Add(50 * time.Millisecond)
	require.False(t, c.Frame(*now))
	require.Equal(t, 1, settles)
	require.False(t, c.Animating())

	// Further frames are inert.
	*now = now.Add(time.Second)
	require.False(t, c.Frame(*now))
	require.Equal(t, 1, settles)
}

func TestIdenticalDatasetDoesNotAnimate(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(twoSeries())
	c.SetDataset(twoSeries())
	require.False(t, c.Animating())
}

func TestIndexTracksDrawnSetMidTween(t *testing.T) {
	c, now := newTestController()
	c.SetDataset(twoSeries())

	before := make([]Point, len(c.Drawn()))
	copy(before, c.Drawn())

	var target Point
	for _, p := range before {
		if p.Series == "X" && p.Year == 1960 {
			target = p
		}
	}
	c.OnMove(target.X, target.Y)
	c.OnClick()

	// Halfway through the transition the points are between their old and
	// new positions; the hit test must match those interpolated positions,
	// not the destination.
	*now = now.Add(50 * time.Millisecond)
	c.Frame(*now)
	for i, p := range c.Drawn() {
		got, ok := c.view.Index.Nearest(p.X, p.Y)
		require.True(t, ok)
		require.Equal(t, i, got)
	}
}

func TestEmptyDatasetDrawsNothing(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(nil)
	c.OnMove(10, 10)
	_, ok := c.Hovered()
	require.False(t, ok)
	c.OnClick()

	surf := &recordingSurface{}
	c.Draw(surf)
	require.Equal(t, 1, surf.clears)
	require.Empty(t, surf.polylines)
	require.Empty(t, surf.circles)
}

func TestDrawEmitsOnePolylinePerSeries(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(twoSeries())
	surf := &recordingSurface{}
	c.Draw(surf)
	require.Equal(t, 1, surf.clears)
	require.Equal(t, 2, len(surf.polylines))
	// One marker per point, no hover highlight.
	require.Equal(t, 4, len(surf.circles))
}

func TestIsolationClearedWhenSeriesDisappears(t *testing.T) {
	c, _ := newTestController()
	c.SetDataset(twoSeries())
	var target Point
	for _, p := range c.Drawn() {
		if p.Series == "Y" {
			target = p
		}
	}
	c.OnMove(target.X, target.Y)
	c.OnClick()
	require.Equal(t, "Y", c.Isolated())

	c.SetDataset([]SeriesData{
		{Name: "X", Years: []int{1960, 1961}, Values: []float64{100, 200}},
	})
	require.Equal(t, "", c.Isolated())
}
