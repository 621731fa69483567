package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reloads an override file into a Holder whenever it changes.
// A file that fails to load leaves the previous catalog in place.
type Watcher struct {
	path     string
	base     *Catalog
	holder   *Holder
	logger   *zap.Logger
	debounce time.Duration

	watcher   *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewWatcher prepares a watcher for path. Entries of base are kept unless
// the file overrides them.
func NewWatcher(path string, base *Catalog, holder *Holder, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("catalog: create watcher: %w", err)
	}
	return &Watcher{
		path:     filepath.Clean(abs),
		base:     base,
		holder:   holder,
		logger:   logger,
		debounce: defaultDebounce,
		watcher:  fw,
		done:     make(chan struct{}),
	}, nil
}

// Start watches the file's directory (editors often replace files by
// rename) and returns immediately.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.begin(); err != nil {
		return err
	}
	go w.run(ctx)
	return nil
}

// Run is Start that blocks until ctx is done or Stop is called.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.begin(); err != nil {
		return err
	}
	w.run(ctx)
	return nil
}

func (w *Watcher) begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return errors.New("catalog: watcher stopped")
	}
	if w.started {
		return errors.New("catalog: watcher already started")
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.close()
		return fmt.Errorf("catalog: watch %s: %w", w.path, err)
	}
	w.started = true
	w.logger.Info("catalog: watching override file", zap.String("path", w.path))
	return nil
}

// Stop closes the underlying watcher and, when the loop was started,
// waits for it to exit.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	err := w.close()
	if started {
		<-w.done
	}
	return err
}

func (w *Watcher) close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.watcher.Close()
	})
	return w.closeErr
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog: watcher error", zap.Error(err))

		case <-pending:
			pending = nil
			if err := w.reload(); err != nil {
				w.logger.Warn("catalog: reload failed, keeping previous catalog", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) reload() error {
	c, err := LoadFile(w.path, w.base)
	if err != nil {
		return err
	}
	w.holder.Swap(c)
	w.logger.Info("catalog: reloaded", zap.String("path", w.path), zap.Int("types", c.Len()))
	return nil
}
