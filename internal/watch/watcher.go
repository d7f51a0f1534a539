// Package watch reloads the compound dump when the file changes on
// disk. The watcher only schedules reloads; building and swapping the
// new store is the callback's job.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher watches one file via its parent directory, which also catches
// the common rename-into-place update. Events are debounced so a large
// dump being written does not trigger a reload per chunk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	reload   func() error
	log      *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New builds a watcher for path. reload is called after the debounce
// window closes; its error is logged, not fatal, so a bad intermediate
// file leaves the previous dataset serving.
func New(path string, debounce time.Duration, log *zap.Logger, reload func() error) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		fsw:      fsw,
		path:     abs,
		debounce: debounce,
		reload:   reload,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start launches the watch loop in its own goroutine.
func (w *Watcher) Start() {
	go w.run()
	w.log.Info("watching compound dump", zap.String("path", w.path))
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-fire:
			timer = nil
			fire = nil
			if err := w.reload(); err != nil {
				w.log.Error("reload failed, keeping previous dataset", zap.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop shuts the watcher down and waits for the loop to exit.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.fsw.Close()
	<-w.doneCh
}
