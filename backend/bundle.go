package backend

import (
	"context"

	"gioui.org/app"
	"git.sr.ht/~gioverse/skel/stream"
)

// WindowState carries the per-window stream controller alongside the
// app-wide service bundle.
type WindowState struct {
	Bundle
	Controller *stream.Controller
}

func NewWindowState(ctx context.Context, bundle Bundle, win *app.Window) WindowState {
	return WindowState{
		Bundle:     bundle,
		Controller: stream.NewController(ctx, win.Invalidate),
	}
}

// Bundle aggregates the application's non-UI services.
type Bundle struct {
	Datasource *Datasource
}

func NewBundle(ds *Datasource) Bundle {
	return Bundle{
		Datasource: ds,
	}
}
