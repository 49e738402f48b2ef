// Package watch turns filesystem change events into picker refresh
// notifications. A Watcher follows one directory at a time, the
// dialog's cursor, and delivers a debounced note on its channel when
// the directory's contents change, so the host can queue a refresh on
// its next frame.
package watch

import (
	"os"
	"sync"
	"time"

	"pickd/internal/errors"
	"pickd/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the current picker directory using fsnotify.
type Watcher struct {
	// Channel delivering the changed directory path, post-debounce
	changes chan string

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Quiet period before a burst of events collapses into one note
	debounce time.Duration

	// Lock for running state and the watched directory
	mutex sync.RWMutex

	// Directory currently watched ("" before the first Watch)
	dir string

	// Whether the watcher is running
	running bool
}

// New creates a directory watcher. Bursts of filesystem events within
// the debounce window collapse into a single notification.
func New(debounce time.Duration) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		changes:   make(chan string, 1),
		stopChan:  make(chan struct{}),
		fsWatcher: fsWatcher,
		debounce:  debounce,
	}, nil
}

// Watch switches the watcher to dir, dropping the previously watched
// directory. Call it again whenever the picker navigates.
func (w *Watcher) Watch(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrap(err, "error accessing directory")
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// The old directory may already be gone; losing its watch is fine
		// either way.
		if err := w.fsWatcher.Remove(w.dir); err != nil {
			log.LogWithFields(log.F("directory", w.dir), log.F("error", err)).Debug("dropping old watch failed")
		}
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %s", dir)
	}
	w.dir = dir
	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// Changes returns the channel that delivers changed directory paths.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Directory returns the currently watched directory.
func (w *Watcher) Directory() string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.dir
}

// IsRunning returns whether the watcher is currently active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	// Create a new stop channel each time Start is called
	w.stopChan = make(chan struct{})

	go func() {
		// The loop owns the channel: closing it here, on the only
		// goroutine that sends, keeps Stop from racing a pending send.
		defer close(w.changes)
		log.Debug("Watcher event loop started.")

		var (
			timer *time.Timer
			fire  <-chan time.Time
			dirty string
		)

		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				// Chmod-only events don't change the listing.
				if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
					!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
					continue
				}
				dirty = w.Directory()
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					fire = timer.C
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(w.debounce)
				}

			case <-fire:
				timer = nil
				fire = nil
				select {
				case w.changes <- dirty:
				default:
					// A refresh is already pending; one is enough.
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				if timer != nil {
					timer.Stop()
				}
				log.Debug("Watcher event loop received stop signal.")
				return
			}
		}
	}()

	log.Debug("Watcher started.")
	return nil
}

// Stop halts the watcher and closes its channels.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	// Signal the event processing goroutine to stop
	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false

	log.Debug("Watcher stopped.")
}
