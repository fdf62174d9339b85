package input

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// LoadFunc reads bindings from a file.
type LoadFunc func(path string) (Bindings, error)

// Watcher reloads a router's bindings whenever the file they were loaded from changes.
// The containing directory is watched so editors that replace the file on save are handled.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	load    LoadFunc
	router  Router

	debounce time.Duration
	onReload func(Bindings, error)
	logger   *zap.Logger

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher starts watching path and applies reloaded bindings to router.
//
// Parameters:
//   - path: the file the bindings are loaded from
//   - load: reads bindings from path
//   - router: the router receiving reloaded bindings
//   - options: functional options to configure the watcher
//
// Returns:
//   - *Watcher: the running watcher
//   - error: error if the directory cannot be watched
func NewWatcher(path string, load LoadFunc, router Router, options ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		load:     load,
		router:   router,
		debounce: 100 * time.Millisecond,
		logger:   zap.NewNop(),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}

	go w.run()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit. Safe to call multiple times.
//
// Returns:
//   - error: error from closing the underlying fsnotify watcher
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

// run waits for the file to settle (no events for the debounce interval) before reloading,
// so a truncate-then-write save is read once, complete.
func (w *Watcher) run() {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("bindings watcher error", zap.Error(err))
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) reload() {
	bs, err := w.load(w.path)
	if err == nil && len(bs) == 0 {
		w.logger.Warn("reloaded bindings are empty; keeping previous bindings", zap.String("path", w.path))
		err = errEmptyBindings
	}
	if err == nil {
		err = w.router.SetBindings(bs)
	}
	if err != nil {
		w.logger.Warn("failed to reload bindings", zap.String("path", w.path), zap.Error(err))
	} else {
		w.logger.Info("bindings reloaded", zap.String("path", w.path), zap.Int("actions", len(bs)))
	}
	if w.onReload != nil {
		w.onReload(bs, err)
	}
}
