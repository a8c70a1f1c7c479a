package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"

	"git.sr.ht/~whereswaldon/pop-plot/backend"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	dataPath := flag.String("data", "", "path to a population CSV to load at startup")
	useStdin := flag.Bool("stdin", false, "stream population CSV from stdin")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	appCtx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()
		w := app.NewWindow(app.Title("Population Explorer"))
		expl := explorer.NewExplorer(w)
		mutator := stream.NewMutator(appCtx, time.Second)
		ds, err := backend.NewDatasource(appCtx, mutator)
		if err != nil {
			log.Fatal(err)
		}
		ws := backend.NewWindowState(appCtx, backend.NewBundle(ds), w)
		if *dataPath != "" {
			if _, err := ds.LoadFromPath(*dataPath); err != nil {
				log.Fatalf("failed loading %q: %v", *dataPath, err)
			}
		} else if *useStdin {
			ds.LoadFromStream(os.Stdin)
		}
		if err := loop(w, ws, expl, cfg); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()

	app.Main()
}

func loop(w *app.Window, ws backend.WindowState, expl *explorer.Explorer, cfg Config) error {
	ui := NewUI(ws, expl, cfg)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			paint.Fill(gtx.Ops, ui.th.Bg)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
