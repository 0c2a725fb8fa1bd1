package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

// dirWatcher watches the current directory only and posts a dirChangedEvent
// into the screen's queue for every change inside it.
type dirWatcher struct {
	fsWatcher *fsnotify.Watcher
	screen    tcell.Screen
	logger    *logrus.Logger

	mu   sync.Mutex
	path string

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newDirWatcher(screen tcell.Screen, logger *logrus.Logger) (*dirWatcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &dirWatcher{
		fsWatcher: fsWatcher,
		screen:    screen,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Watch moves the watch to path, dropping the previous directory.
func (w *dirWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if path == w.path {
		return nil
	}
	if w.path != "" {
		if err := w.fsWatcher.Remove(w.path); err != nil {
			w.logger.WithFields(logrus.Fields{"path": w.path, "error": err}).Debug("unwatch failed")
		}
	}
	w.path = ""
	if err := w.fsWatcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	w.path = path
	w.logger.WithField("path", path).Debug("watching directory")
	return nil
}

func (w *dirWatcher) current() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

func (w *dirWatcher) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			dir := w.current()
			// Events queued before a re-target still name the old directory.
			if dir == "" || (event.Name != dir && filepath.Dir(event.Name) != dir) {
				continue
			}
			w.logger.WithFields(logrus.Fields{"path": event.Name, "op": event.Op.String()}).Debug("directory changed")
			if !postEvent(w.screen, newDirChangedEvent(dir), w.stop) {
				return
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.WithField("error", err).Warn("fsnotify watcher error")
		}
	}
}

// Close stops the event goroutine and releases the watcher.
func (w *dirWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		err = w.fsWatcher.Close()
		<-w.done
	})
	return err
}
