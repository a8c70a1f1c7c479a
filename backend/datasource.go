package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
)

// Sample is one parsed datum: a population value for one series in one
// year.
type Sample struct {
	Series int
	Year   int
	Value  float64
}

type InputKind uint8

const (
	KindSample InputKind = iota
	KindHeadings
)

// InputData is the unit the CSV reader emits: either a batch of newly
// discovered series headings or a single sample.
type InputData struct {
	Kind InputKind
	Sample
	Headings      []string
	HeadingSeries []int
}

type Mode uint8

const (
	ModeNone Mode = iota
	ModeFile
	ModeStream
)

// Session is one loaded dataset and its loading state. The datasource
// emits a fresh copy on every change.
type Session struct {
	ID   string
	Path string
	Data Dataset
	Mode Mode
	Err  error
}

// Status is the subset of session state the top-level UI displays.
type Status struct {
	Mode Mode
	Path string
	Err  error
}

// Datasource loads population CSV data into sessions. Files are watched
// for writes so that a dataset still being appended to streams into the
// chart as it grows.
type Datasource struct {
	pool          *stream.MutationPool[string, Session]
	watcher       *fsnotify.Watcher
	appCtx        context.Context
	seriesCounter atomic.Int32
}

func NewDatasource(appCtx context.Context, mutator *stream.Mutator) (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	return &Datasource{
		pool:    stream.NewMutationPool[string, Session](mutator),
		watcher: watcher,
		appCtx:  appCtx,
	}, nil
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// SessionStream emits the most recently started session's states.
func (d *Datasource) SessionStream(ctx context.Context) <-chan Session {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, state string, mutations map[string]*stream.Mutation[Session]) (<-chan Session, string) {
		for _, m := range mutations {
			subCtx, cancel := context.WithCancel(ctx)
			session := <-m.Stream(subCtx)
			cancel()
			if session.ID != state {
				return m.Stream(ctx), session.ID
			}
		}
		return nil, state
	})
}

// Status emits loading status updates for the most recent session.
func (d *Datasource) Status(ctx context.Context) <-chan Status {
	return stream.Filter(d.SessionStream(ctx), func(session Session) (Status, bool) {
		return Status{Mode: session.Mode, Path: session.Path, Err: session.Err}, true
	})
}

// LoadFromFile prompts for a CSV file and loads it.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile("csv")
	if err != nil {
		return "", err
	}
	path := ""
	if named, ok := file.(interface{ Name() string }); ok {
		path = named.Name()
	}
	return d.load(ModeFile, path, file), nil
}

// LoadFromPath opens and loads the CSV at path, watching it for appended
// rows.
func (d *Datasource) LoadFromPath(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed opening dataset: %w", err)
	}
	return d.load(ModeFile, path, file), nil
}

// LoadFromStream loads CSV data from an arbitrary reader, usually stdin.
func (d *Datasource) LoadFromStream(source io.ReadCloser) string {
	return d.load(ModeStream, "", source)
}

func (d *Datasource) load(mode Mode, path string, source io.ReadCloser) string {
	sessionID := generateSessionID()
	stream.Mutate(d.pool, sessionID, func(ctx context.Context) (values <-chan Session) {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			defer source.Close()
			session := Session{
				ID:   sessionID,
				Path: path,
				Mode: mode,
			}
			// Emit the empty session immediately so the UI leaves its
			// start screen.
			out <- session

			if path != "" {
				if err := d.watcher.Add(path); err != nil {
					log.Printf("cannot watch %q for appends: %v", path, err)
				}
			}
			rawSamples := make(chan InputData, 1024)
			go d.readSource(source, path != "", rawSamples)

			for {
				select {
				case <-ctx.Done():
					return
				case input, ok := <-rawSamples:
					if !ok {
						return
					}
					switch input.Kind {
					case KindHeadings:
						session.Data.SetHeadings(input.Headings, input.HeadingSeries)
					case KindSample:
						session.Data.Insert(input.Sample)
					}
					out <- session
				}
			}
		}()
		return out
	})
	return sessionID
}

// readSource parses the year-per-row CSV dialect:
//
//	year, China, India, ...
//	1960, 667070000, 445954579, ...
//
// Blank cells are skipped. When tail is set, EOF blocks on the file
// watcher instead of ending the session, so appended rows keep flowing.
func (d *Datasource) readSource(source io.Reader, tail bool, samplesChan chan InputData) {
	defer close(samplesChan)
	csvReader := csv.NewReader(NewLineReader(source))
	csvReader.TrimLeadingSpace = true
	headings, err := csvReader.Read()
	if err != nil {
		log.Printf("failed reading CSV headings: %v", err)
		return
	}
	if len(headings) < 2 {
		log.Printf("dataset has no series columns")
		return
	}
	countries := make([]string, 0, len(headings)-1)
	headingSeries := make([]int, 0, len(headings)-1)
	for _, heading := range headings[1:] {
		countries = append(countries, strings.TrimSpace(heading))
		headingSeries = append(headingSeries, int(d.seriesCounter.Add(1)))
	}
	samplesChan <- InputData{
		Kind:          KindHeadings,
		Headings:      countries,
		HeadingSeries: headingSeries,
	}
	// Continuously parse rows and send them on the channel.
readLoop:
	for {
		rec, err := csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) && tail {
				for ev := range d.watcher.Events {
					if ev.Op == fsnotify.Write {
						continue readLoop
					}
				}
			}
			if !errors.Is(err, io.EOF) {
				log.Printf("could not read dataset row: %v", err)
			}
			return
		}
		year, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			log.Printf("failed parsing year %q: %v", rec[0], err)
			continue
		}
		for i := 1; i < len(rec) && i <= len(headingSeries); i++ {
			cell := strings.TrimSpace(rec[i])
			if len(cell) < 1 {
				// Skip null cells.
				continue
			}
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				log.Printf("failed parsing value[%d]=%q: %v", i, cell, err)
				continue
			}
			samplesChan <- InputData{
				Kind: KindSample,
				Sample: Sample{
					Series: headingSeries[i-1],
					Year:   year,
					Value:  value,
				},
			}
		}
	}
}
