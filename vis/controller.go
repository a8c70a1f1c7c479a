package vis

import (
	"image/color"
	"time"

	"gioui.org/f32"
)

// Surface is the minimal drawing target the controller renders into. The
// host owns the pixels and the event loop; the controller only issues
// these primitives.
type Surface interface {
	// Clear erases the rectangle from the origin to size.
	Clear(size f32.Point)
	// Polyline strokes a connected line through pts.
	Polyline(pts []f32.Point, c color.NRGBA, width float32)
	// FillCircle fills a circle of the given radius around center.
	FillCircle(center f32.Point, radius float32, c color.NRGBA)
}

// Controller owns the chart's dataset view and focus state and everything
// derived from them. All methods run synchronously on the host's frame
// loop; none block. Every view transition re-derives scales, projection
// and the spatial index in one step, so pointer handlers always observe an
// index matching what is drawn.
type Controller struct {
	dataset  []SeriesData
	isolated string
	hovered  int // index into drawn, -1 when nothing is hovered

	width, height float32

	view  view
	tween *Tween
	drawn []Point // what is on screen right now, in projection order

	// Duration is the length of one view transition animation.
	Duration time.Duration
	// Radius is the point marker radius in pixels.
	Radius float32
	// LineWidth is the series stroke width in pixels.
	LineWidth float32
	// TickSpacing is the target pixel distance between axis ticks.
	TickSpacing float32
	// OnSettle, if set, is called exactly once when a transition
	// animation reaches its destination.
	OnSettle func()

	now func() time.Time
}

// view is the state derived from the active dataset subset. It is replaced
// wholesale on every transition; the pieces are never updated separately.
type view struct {
	X, Y   Scale
	Points []Point
	Index  *Index
}

func NewController(duration time.Duration) *Controller {
	return &Controller{
		hovered:     -1,
		Duration:    duration,
		Radius:      3,
		LineWidth:   1.5,
		TickSpacing: TickSpacingPx,
		now:         time.Now,
	}
}

// deriveView recomputes scales, projection and spatial index from the
// active subset. It is the single path by which derived state comes into
// being, so no transition can leave any piece of it stale.
func deriveView(active []SeriesData, width, height, tickSpacing float32) view {
	yearLo, yearHi, valLo, valHi, ok := Extents(active)
	if !ok {
		return view{Index: NewIndex(nil)}
	}
	sx := NewScaleDensity(float64(yearLo), float64(yearHi), 0, width, tickSpacing)
	sy := NewScaleDensity(valLo, valHi, height, 0, tickSpacing)
	pts := Project(active, sx, sy)
	return view{X: sx, Y: sy, Points: pts, Index: NewIndex(pts)}
}

func (c *Controller) active() []SeriesData {
	if c.isolated == "" {
		return c.dataset
	}
	for _, s := range c.dataset {
		if s.Name == c.isolated {
			return []SeriesData{s}
		}
	}
	return c.dataset
}

// SetDataset replaces the full dataset and transitions to the resulting
// view. An isolation filter naming a series that no longer exists is
// cleared.
func (c *Controller) SetDataset(ds []SeriesData) {
	c.dataset = ds
	if c.isolated != "" {
		found := false
		for _, s := range ds {
			found = found || s.Name == c.isolated
		}
		if !found {
			c.isolated = ""
		}
	}
	c.transition()
}

// Resize re-derives the view for new chart dimensions. A resize is not a
// dataset-view transition: it cancels any running animation and snaps to
// the new projection rather than chasing the window manager.
func (c *Controller) Resize(width, height float32) {
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	c.view = deriveView(c.active(), width, height, c.TickSpacing)
	c.drawn = c.view.Points
	c.tween = nil
	c.hovered = -1
}

// transition derives the next view and starts animating toward it from
// whatever is currently drawn. Overwriting the previous tween is the
// cancellation: at most one is ever live.
func (c *Controller) transition() {
	prev := snapshotOf(c.drawn)
	c.view = deriveView(c.active(), c.width, c.height, c.TickSpacing)
	c.hovered = -1
	if len(prev) == 0 {
		c.tween = nil
		c.drawn = c.view.Points
		return
	}
	tw := NewTween(prev, snapshotOf(c.view.Points), c.now(), c.Duration)
	if tw.Done() {
		c.tween = nil
		c.drawn = c.view.Points
		return
	}
	c.tween = tw
	snap, _ := tw.At(tw.Start)
	c.drawn = applySnapshot(c.view.Points, snap)
	c.view.Index = NewIndex(c.drawn)
}

// applySnapshot reorders a snapshot into the projection order of the
// target points. Keys absent from the snapshot are skipped.
func applySnapshot(order []Point, snap Snapshot) []Point {
	out := make([]Point, 0, len(order))
	for _, p := range order {
		if q, ok := snap[p.Key()]; ok {
			out = append(out, q)
		}
	}
	return out
}

// Frame advances the animation to now, updating the drawn point set and
// rebuilding the spatial index over it so that hit tests see what is on
// screen rather than where it will land. It reports whether another frame
// is needed.
func (c *Controller) Frame(now time.Time) bool {
	if c.tween == nil {
		return false
	}
	snap, done := c.tween.At(now)
	c.drawn = applySnapshot(c.view.Points, snap)
	c.view.Index = NewIndex(c.drawn)
	if !done {
		return true
	}
	c.tween = nil
	if c.OnSettle != nil {
		c.OnSettle()
	}
	return false
}

// Animating reports whether a transition animation is in flight.
func (c *Controller) Animating() bool {
	return c.tween != nil
}

// OnMove moves the hover focus to the drawn point nearest the pointer.
// With no points on screen it is a no-op.
func (c *Controller) OnMove(x, y float32) {
	idx, ok := c.view.Index.Nearest(x, y)
	if !ok {
		c.hovered = -1
		return
	}
	c.hovered = idx
}

// OnLeave clears the hover focus.
func (c *Controller) OnLeave() {
	c.hovered = -1
}

// OnClick toggles series isolation. With an active filter any click
// clears it, hover or not. Without one, the hovered point's series becomes
// the active view; a click with nothing hovered is a no-op.
func (c *Controller) OnClick() {
	if c.isolated != "" {
		c.isolated = ""
		c.transition()
		return
	}
	if c.hovered < 0 || c.hovered >= len(c.drawn) {
		return
	}
	c.isolated = c.drawn[c.hovered].Series
	c.transition()
}

// Hovered returns the point under focus, if any.
func (c *Controller) Hovered() (Point, bool) {
	if c.hovered < 0 || c.hovered >= len(c.drawn) {
		return Point{}, false
	}
	return c.drawn[c.hovered], true
}

// Isolated returns the name of the isolated series, or "" for the full
// dataset view.
func (c *Controller) Isolated() string {
	return c.isolated
}

// Scales returns the current x and y scales for axis rendering.
func (c *Controller) Scales() (x, y Scale) {
	return c.view.X, c.view.Y
}

// Drawn returns the points currently on screen in projection order.
func (c *Controller) Drawn() []Point {
	return c.drawn
}

// Draw renders the current drawn state into the surface: one polyline per
// series, a marker per point, and an enlarged marker for the hovered
// point. An empty dataset clears the surface and draws nothing else.
func (c *Controller) Draw(s Surface) {
	s.Clear(f32.Pt(c.width, c.height))
	if len(c.drawn) == 0 {
		return
	}
	var run []f32.Point
	runSeries := c.drawn[0].Series
	runColor := c.drawn[0].Color
	flush := func() {
		if len(run) > 1 {
			s.Polyline(run, runColor, c.LineWidth)
		}
		run = run[:0]
	}
	for _, p := range c.drawn {
		if p.Series != runSeries {
			flush()
			runSeries = p.Series
			runColor = p.Color
		}
		run = append(run, f32.Pt(p.X, p.Y))
	}
	flush()
	for _, p := range c.drawn {
		s.FillCircle(f32.Pt(p.X, p.Y), c.Radius, p.Color)
	}
	if p, ok := c.Hovered(); ok {
		s.FillCircle(f32.Pt(p.X, p.Y), c.Radius*2, p.Color)
	}
}
