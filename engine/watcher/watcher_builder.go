package watcher

import "time"

// WatcherBuilderOption is a functional option for configuring a Watcher via NewWatcher.
type WatcherBuilderOption func(*watcher)

// WithDebounce sets the quiet period after the last change before a file is reported.
// Values <= 0 are ignored.
//
// Parameters:
//   - d: the debounce period (default DefaultDebounce)
//
// Returns:
//   - WatcherBuilderOption: option function to apply
func WithDebounce(d time.Duration) WatcherBuilderOption {
	return func(w *watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}
