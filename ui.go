package main

import (
	"image"
	"image/color"
	"strconv"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/pop-plot/backend"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	tabChart = "chart"
	tabData  = "data"
)

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer

	chart     *ChartData
	tab       widget.Enum
	openBtn   widget.Clickable
	dataTable component.GridState
	loadErr   string

	th            *material.Theme
	sessionStream *stream.Stream[backend.Session]
	session       backend.Session
	statusStream  *stream.Stream[backend.Status]
	status        backend.Status
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg Config) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	return &UI{
		ws:            ws,
		th:            th,
		expl:          expl,
		tab:           widget.Enum{Value: tabChart},
		chart:         NewChart(cfg),
		sessionStream: stream.New(ws.Controller, ws.Bundle.Datasource.SessionStream),
		statusStream:  stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
}

// Update the state of the UI and generate events.
func (ui *UI) Update(gtx C) {
	ui.sessionStream.ReadInto(gtx, &ui.session, backend.Session{})
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	ui.chart.Data = ui.session.Data
	ui.tab.Update(gtx)
	if ui.status.Err != nil {
		ui.loadErr = ui.status.Err.Error()
	}
	if ui.openBtn.Clicked(gtx) {
		go func() {
			if _, err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl); err != nil {
				ui.loadErr = err.Error()
			}
		}()
	}
}

type TabStyle struct {
	state  *widget.Enum
	label  material.LabelStyle
	border widget.Border
	inset  layout.Inset
	value  string
	fill   color.NRGBA
}

func Tab(th *material.Theme, state *widget.Enum, value, display string) TabStyle {
	selected := state.Value == value
	ts := TabStyle{
		state: state,
		label: material.Body1(th, display),
		inset: layout.UniformInset(2),
		border: widget.Border{
			Width: 2,
			Color: th.ContrastBg,
		},
		value: value,
	}
	ts.label.Alignment = text.Middle
	if selected {
		ts.label.Color = th.ContrastFg
		ts.fill = th.ContrastBg
	}
	return ts
}

func (t TabStyle) Layout(gtx C) D {
	return t.inset.Layout(gtx, func(gtx C) D {
		return t.border.Layout(gtx, func(gtx C) D {
			return t.inset.Layout(gtx, func(gtx C) D {
				return t.state.Layout(gtx, t.value, func(gtx C) D {
					return layout.Background{}.Layout(gtx, func(gtx C) D {
						paint.FillShape(gtx.Ops, t.fill, clip.Rect{Max: gtx.Constraints.Min}.Op())
						return D{Size: gtx.Constraints.Min}
					}, t.label.Layout)
				})
			})
		})
	})
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			return layout.Flex{}.Layout(gtx,
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabChart, "Chart").Layout),
				layout.Flexed(1, Tab(ui.th, &ui.tab, tabData, "Data").Layout),
			)
		}),
		layout.Rigid(func(gtx C) D {
			if len(ui.loadErr) == 0 {
				return D{}
			}
			l := material.Body1(ui.th, ui.loadErr)
			l.Color = color.NRGBA{R: 150, A: 255}
			return l.Layout(gtx)
		}),
		layout.Flexed(1, func(gtx C) D {
			if ui.tab.Value == tabChart {
				return ui.chart.Layout(gtx, ui.th)
			}
			return ui.layoutDataTable(gtx)
		}),
	)
}

// layoutDataTable shows the raw values: one row per year, one column per
// country.
func (ui *UI) layoutDataTable(gtx C) D {
	ds := &ui.session.Data
	yearLo, yearHi := ds.Domain()
	rows := yearHi - yearLo + 1
	if rows < 0 {
		rows = 0
	}
	cols := len(ds.Series) + 1
	table := component.Table(ui.th, &ui.dataTable)
	yearColWidth := gtx.Dp(60)
	valueColWidth := gtx.Dp(120)
	rowHeight := gtx.Sp(20)
	return table.Layout(gtx, rows, cols,
		func(axis layout.Axis, index, constraint int) int {
			if axis == layout.Vertical {
				return min(constraint, rowHeight)
			}
			if index == 0 {
				return min(constraint, yearColWidth)
			}
			return min(constraint, valueColWidth)
		},
		func(gtx C, index int) D {
			heading := "Year"
			if index > 0 && index-1 < len(ds.Series) {
				heading = ds.Series[index-1].Name()
			}
			l := material.Body1(ui.th, heading)
			l.Color = ui.th.ContrastFg
			return layout.Background{}.Layout(gtx,
				func(gtx C) D {
					paint.FillShape(gtx.Ops, ui.th.ContrastBg, clip.Rect{Max: gtx.Constraints.Max}.Op())
					return D{Size: gtx.Constraints.Min}
				},
				l.Layout,
			)
		},
		func(gtx C, row, col int) D {
			year := yearLo + row
			var label string
			if col == 0 {
				label = strconv.Itoa(year)
			} else if col-1 < len(ds.Series) {
				if v, ok := ds.Series[col-1].ValueAt(year); ok {
					label = formatPop(v)
				} else {
					label = "-"
				}
			}
			l := material.Body2(ui.th, label)
			if col > 0 {
				l.Alignment = text.End
			}
			return layout.UniformInset(2).Layout(gtx, l.Layout)
		})
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Dataset").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Body2(ui.th, ui.loadErr).Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.session.Data.Initialized() {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
