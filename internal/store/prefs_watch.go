package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const prefsReloadDelay = 200 * time.Millisecond

// PrefsWatcher reloads prefs.json when it changes on disk and hands the new value to
// OnChange. The config directory is watched (not the file) so atomic renames are seen.
type PrefsWatcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}

	mu       sync.Mutex
	onChange func(Prefs)
	current  Prefs
}

func NewPrefsWatcher(initial Prefs, log *zap.Logger, onChange func(Prefs)) (*PrefsWatcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path, err := PrefsPath()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w := &PrefsWatcher{
		path:     path,
		log:      log,
		watcher:  fw,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		onChange: onChange,
		current:  initial,
	}
	go w.loop()
	return w, nil
}

func (w *PrefsWatcher) loop() {
	defer close(w.done)
	defer w.watcher.Close()

	var timer *time.Timer
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(prefsReloadDelay, w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("prefs watcher error", zap.Error(err))
		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *PrefsWatcher) reload() {
	p, err := loadPrefsFile(w.path)
	if err != nil {
		w.log.Warn("prefs reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.mu.Lock()
	if p == w.current {
		w.mu.Unlock()
		return
	}
	w.current = p
	cb := w.onChange
	w.mu.Unlock()

	w.log.Info("prefs reloaded", zap.String("theme", p.Theme))
	if cb != nil {
		cb(p)
	}
}

func (w *PrefsWatcher) Current() Prefs {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops watching. It is safe to call more than once.
func (w *PrefsWatcher) Close() error {
	if w == nil {
		return nil
	}
	select {
	case <-w.stopCh:
	default:
		close(w.stopCh)
	}
	<-w.done
	return nil
}
