package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/pop-plot/backend"
	"git.sr.ht/~whereswaldon/pop-plot/vis"
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

func ceil[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Ceil(float64(a)))
}

func floor[T constraints.Integer | constraints.Float](a T) T {
	return T(math.Floor(float64(a)))
}

// ChartData is the interactive chart widget. It owns a vis.Controller and
// adapts Gio's pointer events and draw ops to it.
type ChartData struct {
	// Data is the latest session dataset, refreshed by the UI each frame.
	Data backend.Dataset

	ctrl     *vis.Controller
	lastRev  uint64
	haveRev  bool
	lastSize image.Point

	paused   bool
	pauseBtn widget.Clickable
	keyTable component.GridState

	pos       f32.Point
	isHovered bool

	tickSpacing unit.Dp
	pointRadius unit.Dp
	lineWidth   unit.Dp
}

func NewChart(cfg Config) *ChartData {
	return &ChartData{
		ctrl:        vis.NewController(cfg.animation()),
		tickSpacing: unit.Dp(cfg.TickSpacingDp),
		pointRadius: unit.Dp(cfg.PointRadiusDp),
		lineWidth:   unit.Dp(cfg.LineWidthDp),
	}
}

// seriesData snapshots the dataset into the form the controller consumes.
func seriesData(ds *backend.Dataset) []vis.SeriesData {
	out := make([]vis.SeriesData, 0, len(ds.Series))
	for _, s := range ds.Series {
		if !s.Initialized() {
			continue
		}
		years, values := s.Points()
		out = append(out, vis.SeriesData{
			Name:   s.Name(),
			Years:  years,
			Values: values,
		})
	}
	return out
}

// Update processes events for the chart. Pointer coordinates arrive
// relative to the plot area because that is where the event op is
// registered.
func (c *ChartData) Update(gtx C) {
	if c.pauseBtn.Clicked(gtx) {
		c.paused = !c.paused
	}
	if !c.paused {
		if rev := c.Data.Revision(); !c.haveRev || rev != c.lastRev {
			c.lastRev = rev
			c.haveRev = true
			c.ctrl.SetDataset(seriesData(&c.Data))
		}
	}
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: c,
			Kinds:  pointer.Enter | pointer.Leave | pointer.Move | pointer.Press,
		})
		if !ok {
			break
		}
		pe, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch pe.Kind {
		case pointer.Enter, pointer.Move:
			c.isHovered = true
			c.pos = pe.Position
			c.ctrl.OnMove(pe.Position.X, pe.Position.Y)
		case pointer.Leave, pointer.Cancel:
			c.isHovered = false
			c.ctrl.OnLeave()
		case pointer.Press:
			c.ctrl.OnClick()
		}
	}
}

func (c *ChartData) Layout(gtx C, th *material.Theme) D {
	c.Update(gtx)
	if !c.Data.Initialized() {
		return D{Size: gtx.Constraints.Max}
	}
	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}

	// Reserve gutter space for the widest possible value label.
	_, valHi := c.Data.ValueRange()
	gutterLabel := material.Body1(th, formatPop(valHi))
	macro := op.Record(gtx.Ops)
	gutterDims := gutterLabel.Layout(gtx)
	_ = macro.Stop()
	gutterWidth := gutterDims.Size.X + gtx.Dp(8)

	// Measure the key so the plot gets the remaining vertical space.
	macro = op.Record(gtx.Ops)
	gtx.Constraints.Min.X = origConstraints.Max.X
	keyDims := c.layoutKey(gtx, th)
	keyCall := macro.Stop()

	gtx.Constraints = origConstraints.SubMax(image.Pt(0, keyDims.Size.Y))
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Flexed(1, func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Flexed(1, func(gtx C) D {
							gtx.Constraints = layout.Exact(image.Pt(gutterWidth, gtx.Constraints.Max.Y-gutterDims.Size.Y))
							return c.layoutYAxisLabels(gtx, th)
						}),
						layout.Rigid(func(gtx C) D {
							gtx.Constraints = layout.Exact(image.Pt(gutterWidth, gutterDims.Size.Y))
							icon := pauseIcon
							if c.paused {
								icon = playIcon
							}
							return material.Clickable(gtx, &c.pauseBtn, func(gtx C) D {
								return layout.Center.Layout(gtx, func(gtx C) D {
									return icon.Layout(gtx, th.Fg)
								})
							})
						}),
					)
				}),
				layout.Flexed(1, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
						layout.Flexed(1, func(gtx C) D {
							return c.layoutPlot(gtx, th)
						}),
						layout.Rigid(func(gtx C) D {
							gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, gutterDims.Size.Y))
							return c.layoutXAxisLabels(gtx, th)
						}),
					)
				}),
			)
		}),
		layout.Rigid(func(gtx C) D {
			keyCall.Add(gtx.Ops)
			return keyDims
		}),
	)
}

// layoutPlot draws the chart body: grid, series lines, markers and the
// hover overlay.
func (c *ChartData) layoutPlot(gtx C, th *material.Theme) D {
	sz := gtx.Constraints.Max
	if sz != c.lastSize {
		c.lastSize = sz
		c.ctrl.Radius = float32(gtx.Dp(c.pointRadius))
		c.ctrl.LineWidth = float32(gtx.Dp(c.lineWidth))
		c.ctrl.TickSpacing = float32(gtx.Dp(c.tickSpacing))
		c.ctrl.Resize(float32(sz.X), float32(sz.Y))
	}
	defer clip.Rect{Max: sz}.Push(gtx.Ops).Pop()
	event.Op(gtx.Ops, c)

	if c.ctrl.Frame(gtx.Now) {
		gtx.Execute(op.InvalidateCmd{})
	}

	c.layoutGrid(gtx, th)
	surface := opSurface{ops: gtx.Ops}
	c.ctrl.Draw(&surface)

	if p, ok := c.ctrl.Hovered(); ok && c.isHovered {
		c.layoutHoverMarker(gtx, th, p)
	}
	return D{Size: sz}
}

// layoutGrid paints a horizontal rule per value tick.
func (c *ChartData) layoutGrid(gtx C, th *material.Theme) {
	_, sy := c.ctrl.Scales()
	lineHeight := gtx.Dp(1)
	for _, tick := range sy.Ticks() {
		y := int(sy.Project(tick))
		if y < 0 || y > gtx.Constraints.Max.Y {
			continue
		}
		paint.FillShape(gtx.Ops, color.NRGBA{A: 50}, clip.Rect{
			Min: image.Pt(0, y),
			Max: image.Pt(gtx.Constraints.Max.X, y+lineHeight),
		}.Op())
	}
}

// layoutHoverMarker draws a vertical rule through the hovered point and a
// tooltip naming its series, year and value. The tooltip flips to
// whichever side has room.
func (c *ChartData) layoutHoverMarker(gtx C, th *material.Theme, p vis.Point) {
	xR := ceil(p.X)
	xL := xR - float32(gtx.Dp(1))
	paint.FillShape(gtx.Ops, color.NRGBA{A: 255}, clip.Rect{
		Min: image.Pt(int(xL), 0),
		Max: image.Pt(int(xR), gtx.Constraints.Max.Y),
	}.Op())

	origConstraints := gtx.Constraints
	gtx.Constraints.Min = image.Point{}
	macro := op.Record(gtx.Ops)
	dims := layout.Background{}.Layout(gtx,
		func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 255, G: 255, B: 255, A: 200}, clip.Rect{Max: gtx.Constraints.Min}.Op())
			return D{Size: gtx.Constraints.Min}
		},
		func(gtx C) D {
			return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
				return layout.Flex{Axis: layout.Vertical, Alignment: layout.Start}.Layout(gtx,
					layout.Rigid(material.Body1(th, p.Series).Layout),
					layout.Rigid(material.Body2(th, fmt.Sprintf("%d: %s", p.Year, formatPop(p.Value))).Layout),
				)
			})
		},
	)
	call := macro.Stop()
	gtx.Constraints = origConstraints

	pos := image.Point{}
	if int(xL) > gtx.Constraints.Max.X-int(xR) {
		pos.X = max(int(xL)-dims.Size.X, 0)
	} else {
		pos.X = min(int(xR), gtx.Constraints.Max.X-dims.Size.X)
	}
	if offscreenY := gtx.Constraints.Max.Y - (int(c.pos.Y) + dims.Size.Y); offscreenY < 0 {
		pos.Y = int(c.pos.Y) + offscreenY
	} else {
		pos.Y = int(c.pos.Y)
	}
	transform := op.Offset(pos).Push(gtx.Ops)
	call.Add(gtx.Ops)
	transform.Pop()
}

// layoutYAxisLabels places one value label per tick, right-aligned into
// the gutter.
func (c *ChartData) layoutYAxisLabels(gtx C, th *material.Theme) D {
	_, sy := c.ctrl.Scales()
	for _, tick := range sy.Ticks() {
		label := material.Body2(th, formatPop(tick))
		macro := op.Record(gtx.Ops)
		dims := label.Layout(gtx)
		call := macro.Stop()
		y := int(sy.Project(tick)) - dims.Size.Y/2
		if y < 0 || y+dims.Size.Y > gtx.Constraints.Max.Y {
			continue
		}
		stack := op.Offset(image.Pt(gtx.Constraints.Max.X-dims.Size.X, y)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}
	return D{Size: gtx.Constraints.Max}
}

// layoutXAxisLabels places one year label per tick under the plot.
func (c *ChartData) layoutXAxisLabels(gtx C, th *material.Theme) D {
	sx, _ := c.ctrl.Scales()
	usedX := 0
	for _, tick := range sx.Ticks() {
		label := material.Body2(th, strconv.Itoa(int(tick)))
		macro := op.Record(gtx.Ops)
		dims := label.Layout(gtx)
		call := macro.Stop()
		x := int(sx.Project(tick)) - dims.Size.X/2
		if x < usedX || x+dims.Size.X > gtx.Constraints.Max.X {
			continue
		}
		stack := op.Offset(image.Pt(x, 0)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
		usedX = x + dims.Size.X + gtx.Dp(4)
	}
	return D{Size: gtx.Constraints.Max}
}

// seriesColor returns the on-screen color for a series, falling back to
// grey for series not currently drawn.
func (c *ChartData) seriesColor(name string) color.NRGBA {
	for _, p := range c.ctrl.Drawn() {
		if p.Series == name {
			return p.Color
		}
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}
}

// layoutKey lays out the legend table: swatch, country, first and latest
// values, and total growth.
func (c *ChartData) layoutKey(gtx C, th *material.Theme) D {
	table := component.Table(th, &c.keyTable)
	table.HScrollbarStyle.Indicator.MinorWidth = 0
	table.HScrollbarStyle.Track.MinorPadding = 0
	table.VScrollbarStyle.Indicator.MinorWidth = 0
	table.VScrollbarStyle.Track.MinorPadding = 0
	swatchColWidth := gtx.Dp(50)
	valueColWidth := gtx.Dp(110)
	nameColWidth := gtx.Constraints.Max.X - swatchColWidth - 3*valueColWidth - gtx.Dp(table.VScrollbarStyle.Width())
	rowHeight := gtx.Sp(20)
	const (
		swatchCol = iota
		countryCol
		firstCol
		latestCol
		growthCol
		numCols
	)
	maxRows := min(len(c.Data.Series), 6)
	return table.Layout(gtx, maxRows, numCols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			var size int
			switch index {
			case swatchCol:
				size = swatchColWidth
			case countryCol:
				size = nameColWidth
			case firstCol, latestCol, growthCol:
				size = valueColWidth
			}
			return min(size, constraint)
		},
		func(gtx C, index int) D {
			var l material.LabelStyle
			switch index {
			case swatchCol:
				l = material.Body1(th, "Color")
			case countryCol:
				l = material.Body1(th, "Country")
				l.Alignment = text.Middle
			case firstCol:
				l = material.Body1(th, "First")
				l.Alignment = text.End
			case latestCol:
				l = material.Body1(th, "Latest")
				l.Alignment = text.End
			case growthCol:
				l = material.Body1(th, "Growth")
				l.Alignment = text.End
			default:
				l = material.Body1(th, "???")
			}
			l.Color = th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				l.Layout,
			)
		},
		func(gtx C, row, col int) (dims D) {
			defer func() {
				dims.Size = gtx.Constraints.Constrain(dims.Size)
			}()
			if row >= len(c.Data.Series) {
				return D{Size: gtx.Constraints.Max}
			}
			series := c.Data.Series[row]
			years, values := series.Points()
			return layout.UniformInset(2).Layout(gtx, func(gtx C) D {
				switch col {
				case swatchCol:
					return layout.Center.Layout(gtx, func(gtx C) D {
						sideLen := gtx.Dp(10)
						sz := image.Pt(sideLen, sideLen)
						paint.FillShape(gtx.Ops, c.seriesColor(series.Name()), clip.Rect{Max: sz}.Op())
						return D{Size: sz}
					})
				case countryCol:
					return material.Body2(th, series.Name()).Layout(gtx)
				case firstCol:
					l := material.Body2(th, firstValueLabel(years, values))
					l.Alignment = text.End
					return l.Layout(gtx)
				case latestCol:
					l := material.Body2(th, latestValueLabel(years, values))
					l.Alignment = text.End
					return l.Layout(gtx)
				case growthCol:
					l := material.Body2(th, growthLabel(values))
					l.Alignment = text.End
					return l.Layout(gtx)
				default:
					return D{Size: gtx.Constraints.Max}
				}
			})
		})
}

func firstValueLabel(years []int, values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	return formatPop(values[0])
}

func latestValueLabel(years []int, values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	return formatPop(values[len(values)-1])
}

func growthLabel(values []float64) string {
	if len(values) < 2 || values[0] == 0 {
		return "-"
	}
	growth := (values[len(values)-1] - values[0]) / values[0] * 100
	return fmt.Sprintf("%+.1f%%", growth)
}

// formatPop renders a population count compactly.
func formatPop(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return strconv.FormatFloat(v/1e9, 'g', 4, 64) + "B"
	case abs >= 1e6:
		return strconv.FormatFloat(v/1e6, 'g', 4, 64) + "M"
	case abs >= 1e3:
		return strconv.FormatFloat(v/1e3, 'g', 4, 64) + "k"
	default:
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
}

// opSurface adapts Gio's op list to the controller's drawing surface.
type opSurface struct {
	ops *op.Ops
}

var _ vis.Surface = (*opSurface)(nil)

func (s *opSurface) Clear(size f32.Point) {
	// The window background already covers the plot rectangle; clearing
	// is a no-op on an immediate-mode op list.
}

func (s *opSurface) Polyline(pts []f32.Point, col color.NRGBA, width float32) {
	if len(pts) < 2 {
		return
	}
	var p clip.Path
	p.Begin(s.ops)
	p.MoveTo(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	paint.FillShape(s.ops, col, clip.Stroke{
		Path:  p.End(),
		Width: width,
	}.Op())
}

func (s *opSurface) FillCircle(center f32.Point, radius float32, col color.NRGBA) {
	r := int(ceil(radius))
	bounds := image.Rect(int(center.X)-r, int(center.Y)-r, int(center.X)+r, int(center.Y)+r)
	paint.FillShape(s.ops, col, clip.Ellipse(bounds).Op(s.ops))
}
