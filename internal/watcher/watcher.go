// Package watcher keeps an Engine's dataset in sync with its source
// file. On every change to the file it rebuilds the dataset off to the
// side and swaps it in atomically: queries in flight keep the dataset
// they started with, and a load failure leaves the current dataset
// untouched.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/gradstat/internal/dataset"
	"github.com/blackwell-systems/gradstat/internal/query"
	"github.com/blackwell-systems/gradstat/internal/source"
)

// debounceWindow coalesces the burst of write events most editors and
// download tools emit for a single logical file update.
const debounceWindow = 500 * time.Millisecond

// Watcher reloads a dataset file into an Engine when the file changes.
type Watcher struct {
	path   string
	engine *query.Engine

	// OnReload, when set, observes the outcome of every reload
	// attempt. Called from the watcher goroutine.
	OnReload func(report *dataset.LoadReport, err error)

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher for the dataset file at path.
func New(path string, engine *query.Engine) (*Watcher, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}
	return &Watcher{
		path:   abs,
		engine: engine,
		stopCh: make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than
// the file itself so atomic rename-into-place updates are seen.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

// run debounces file events and triggers reloads.
func (w *Watcher) run() {
	defer w.wg.Done()

	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	reloadCh := make(chan struct{}, 1)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceWindow, func() {
				select {
				case reloadCh <- struct{}{}:
				default:
				}
			})

		case <-reloadCh:
			w.reload()

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are transient; the next event still arrives
			// or the watcher is being shut down.

		case <-w.stopCh:
			return
		}
	}
}

// reload builds a fresh dataset from the source file and swaps it into
// the engine. On failure the engine keeps serving the previous dataset.
func (w *Watcher) reload() {
	report, err := w.load()
	if w.OnReload != nil {
		w.OnReload(report, err)
	}
}

func (w *Watcher) load() (*dataset.LoadReport, error) {
	rows, parseRejects, err := source.ReadRows(w.path)
	if err != nil {
		return nil, err
	}

	ds, report, err := dataset.Load(rows)
	if err != nil {
		return report, err
	}
	report.Rejected = append(parseRejects, report.Rejected...)

	w.engine.Swap(ds)
	return report, nil
}
