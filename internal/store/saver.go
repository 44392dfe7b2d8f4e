package store

import (
	"context"
	"sync"
	"time"

	"chatweaver/internal/model"

	"go.uber.org/zap"
)

// AsyncSaver writes snapshots in the background. Submit never blocks on I/O; when
// snapshots arrive faster than they can be written only the latest one is saved.
// A failed write is logged and dropped: the next Submit carries the full state again.
type AsyncSaver struct {
	bs       ByteStore
	log      *zap.Logger
	debounce time.Duration

	mu      sync.Mutex
	pending model.Snapshot
	dirty   bool
	running bool
	closed  bool
	idle    chan struct{}
	lastErr error
	writes  int
}

type AsyncSaverOpts struct {
	Store  ByteStore
	Logger *zap.Logger

	// Debounce delays each write to coalesce bursts (e.g. typing). Zero writes immediately.
	Debounce time.Duration
}

func NewAsyncSaver(opts AsyncSaverOpts) *AsyncSaver {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	idle := make(chan struct{})
	close(idle)
	return &AsyncSaver{
		bs:       opts.Store,
		log:      log,
		debounce: opts.Debounce,
		idle:     idle,
	}
}

// Submit queues snap for writing.
func (a *AsyncSaver) Submit(snap model.Snapshot) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.pending = snap
	a.dirty = true
	if a.running {
		return
	}
	a.running = true
	a.idle = make(chan struct{})
	go a.run()
}

func (a *AsyncSaver) run() {
	for {
		if a.debounce > 0 {
			time.Sleep(a.debounce)
		}
		a.mu.Lock()
		if !a.dirty {
			a.running = false
			close(a.idle)
			a.mu.Unlock()
			return
		}
		snap := a.pending
		a.pending = nil
		a.dirty = false
		a.mu.Unlock()

		start := time.Now()
		err := Save(context.Background(), a.bs, snap)

		a.mu.Lock()
		a.lastErr = err
		if err == nil {
			a.writes++
		}
		a.mu.Unlock()

		if err != nil {
			a.log.Warn("snapshot save failed", zap.Error(err), zap.Int("workspaces", len(snap)))
			continue
		}
		a.log.Debug("snapshot saved", zap.Int("workspaces", len(snap)), zap.Duration("took", time.Since(start)))
	}
}

// Flush waits until every submitted snapshot has been handled and returns the result of
// the most recent write.
func (a *AsyncSaver) Flush(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	idle := a.idle
	a.mu.Unlock()
	select {
	case <-idle:
	case <-ctx.Done():
		return ctx.Err()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Close flushes and stops accepting snapshots.
func (a *AsyncSaver) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}

// Writes reports how many snapshots were written successfully.
func (a *AsyncSaver) Writes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.writes
}
