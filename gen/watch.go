package gen

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/tmplgen/lang"
	"github.com/ardnew/tmplgen/log"
)

// DefaultDebounce is the quiet period a [Watcher] waits for by default.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatch reports a failure to watch template files.
var ErrWatch = lang.NewError("watch failed")

// Watcher reports changes to a set of template files. Bursts of events
// within the debounce interval are coalesced into one change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   log.Logger
	debounce *debouncer

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

// NewWatcher returns a watcher that waits interval after the last event
// before reporting a change. A non-positive interval uses [DefaultDebounce].
func NewWatcher(logger log.Logger, interval time.Duration) (*Watcher, error) {
	if interval <= 0 {
		interval = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ErrWatch.Wrap(err)
	}

	return &Watcher{
		watcher:  w,
		logger:   logger,
		debounce: newDebouncer(interval),
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}, nil
}

// Add watches the files at paths. Their parent directories are watched so
// that files replaced by rename are still reported.
func (w *Watcher) Add(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", path))
		}

		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := w.dirs[dir]; ok {
			continue
		}

		if err := w.watcher.Add(dir); err != nil {
			return ErrWatch.Wrap(err).With(slog.String("path", dir))
		}

		w.dirs[dir] = struct{}{}

		w.logger.Debug("watching directory", slog.String("path", dir))
	}

	return nil
}

// Watch blocks until ctx is done, calling onChange with the name of the last
// changed file after each burst of events. Errors returned by onChange are
// logged and watching continues.
func (w *Watcher) Watch(ctx context.Context, onChange func(name string) error) error {
	defer w.debounce.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.DebugContext(
				ctx,
				"file event",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			w.debounce.trigger(func() {
				if ctx.Err() != nil {
					return
				}

				if err := onChange(event.Name); err != nil {
					w.logger.ErrorContext(ctx, "change handler failed",
						slog.String("path", event.Name),
						slog.Any("error", err),
					)
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.ErrorContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	if err := w.watcher.Close(); err != nil {
		return ErrWatch.Wrap(err)
	}

	return nil
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && !event.Op.Has(fsnotify.Write) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.files[abs]

	return ok
}

// debouncer runs the most recently triggered callback once no trigger has
// arrived for the interval.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	fn      func()
	stopped bool
	running sync.WaitGroup
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.fn = fn

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		if d.stopped || d.fn == nil {
			d.mu.Unlock()

			return
		}

		fn := d.fn
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()

		fn()
	})
}

// stop cancels any pending callback and waits for a running one to return.
func (d *debouncer) stop() {
	d.mu.Lock()

	d.stopped = true
	d.fn = nil

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	d.running.Wait()
}
