package input

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

var errEmptyBindings = errors.New("no bindings defined")

// WatcherOption is a functional option for configuring a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the file must stay quiet before it is reloaded.
//
// Parameters:
//   - d: quiet interval (default 100ms)
//
// Returns:
//   - WatcherOption: functional option to set the debounce interval
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithReloadCallback registers a function called after every reload attempt.
//
// Parameters:
//   - fn: receives the loaded bindings and the reload error, if any
//
// Returns:
//   - WatcherOption: functional option to set the callback
func WithReloadCallback(fn func(Bindings, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithWatcherLogger sets the logger used for reload diagnostics.
//
// Parameters:
//   - logger: the zap logger (nil keeps the no-op logger)
//
// Returns:
//   - WatcherOption: functional option to set the logger
func WithWatcherLogger(logger *zap.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}
