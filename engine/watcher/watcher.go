package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a file is reported.
const DefaultDebounce = 100 * time.Millisecond

// watcher is the implementation of the Watcher interface.
type watcher struct {
	mu *sync.Mutex

	fs       *fsnotify.Watcher
	debounce time.Duration

	files map[string]struct{}
	dirs  map[string]int

	events  chan string
	errors  chan error
	fired   chan string
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watcher reports changes to individual files.
//
// Files are watched through their parent directory so editors that save by replacing the file are
// still seen. Bursts of changes to one file are coalesced: a path is reported once it has been quiet
// for the debounce period.
type Watcher interface {
	// Watch starts reporting changes to the file at path. Watching a path twice is a no-op.
	//
	// Parameters:
	//   - path: the file to watch
	//
	// Returns:
	//   - error: error if the parent directory cannot be watched
	Watch(path string) error

	// Unwatch stops reporting changes to the file at path.
	//
	// Parameters:
	//   - path: the file to forget
	//
	// Returns:
	//   - error: error if the parent directory watch cannot be removed
	Unwatch(path string) error

	// Events delivers the absolute path of each changed file. Closed by Close.
	//
	// Returns:
	//   - <-chan string: the event channel
	Events() <-chan string

	// Errors delivers errors reported by the underlying watcher. Closed by Close.
	//
	// Returns:
	//   - <-chan error: the error channel
	Errors() <-chan error

	// Close stops the watcher and closes both channels. Safe to call more than once.
	//
	// Returns:
	//   - error: error from the underlying watcher
	Close() error
}

var _ Watcher = &watcher{}

// NewWatcher creates a running Watcher with the specified options applied.
//
// Parameters:
//   - options: a variadic list of WatcherBuilderOption functions to configure the Watcher
//
// Returns:
//   - Watcher: the running watcher
//   - error: error if the platform watcher cannot be created
func NewWatcher(options ...WatcherBuilderOption) (Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &watcher{
		mu:       &sync.Mutex{},
		fs:       fs,
		debounce: DefaultDebounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]int),
		events:   make(chan string, 16),
		errors:   make(chan error, 1),
		fired:    make(chan string, 16),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(w)
	}

	go w.run()
	return w, nil
}

func (w *watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[abs]; ok {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}
	log.Printf("[Watcher] watching %s", abs)
	return nil
}

func (w *watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[abs]; !ok {
		return nil
	}
	delete(w.files, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	if err := w.fs.Remove(dir); err != nil {
		return fmt.Errorf("failed to unwatch %s: %w", dir, err)
	}
	return nil
}

func (w *watcher) Events() <-chan string {
	return w.events
}

func (w *watcher) Errors() <-chan error {
	return w.errors
}

func (w *watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *watcher) watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[path]
	return ok
}

// run forwards debounced events until Close. It owns the outgoing channels and closes them on exit.
func (w *watcher) run() {
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
		close(w.events)
		close(w.errors)
		close(w.done)
	}()

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			name := filepath.Clean(event.Name)
			if !w.watched(name) {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(w.debounce, func() {
				select {
				case w.fired <- name:
				case <-w.closeCh:
				}
			})
		case name := <-w.fired:
			delete(timers, name)
			select {
			case w.events <- name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				log.Printf("[Watcher] dropped error: %v", err)
			}
		case <-w.closeCh:
			return
		}
	}
}
