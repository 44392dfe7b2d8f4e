package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"chatweaver/internal/model"

	"go.uber.org/zap"
)

// slowStore records every write and blocks each Put until released.
type slowStore struct {
	*MemStore
	mu     sync.Mutex
	writes []string
	gate   chan struct{}
}

func (s *slowStore) Put(ctx context.Context, key string, b []byte) error {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	s.writes = append(s.writes, string(b))
	s.mu.Unlock()
	return s.MemStore.Put(ctx, key, b)
}

func named(name string) model.Snapshot {
	s := sampleSnapshot()
	s[0].Name = name
	return s
}

func TestAsyncSaver_LatestWins(t *testing.T) {
	gate := make(chan struct{})
	bs := &slowStore{MemStore: NewMemStore(), gate: gate}
	a := NewAsyncSaver(AsyncSaverOpts{Store: bs, Logger: zap.NewNop()})

	a.Submit(named("first"))
	// The writer is now blocked on the first Put; these coalesce.
	time.Sleep(10 * time.Millisecond)
	a.Submit(named("second"))
	a.Submit(named("third"))
	close(gate)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, info := Load(context.Background(), bs)
	if info.Source != SourceStored || got[0].Name != "third" {
		t.Fatalf("expected latest snapshot stored, got %q (%+v)", got[0].Name, info)
	}
	bs.mu.Lock()
	n := len(bs.writes)
	bs.mu.Unlock()
	if n > 2 {
		t.Fatalf("expected intermediate snapshot to be coalesced, got %d writes", n)
	}
}

func TestAsyncSaver_FailureIsRetriedOnNextSubmit(t *testing.T) {
	bs := NewMemStore()
	a := NewAsyncSaver(AsyncSaverOpts{Store: bs})
	ctx := context.Background()

	bs.SetErr(errors.New("quota exceeded"))
	a.Submit(named("lost"))
	if err := a.Flush(ctx); err == nil {
		t.Fatalf("expected flush to report the failed write")
	}

	bs.SetErr(nil)
	a.Submit(named("kept"))
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got, _ := Load(ctx, bs)
	if got[0].Name != "kept" {
		t.Fatalf("expected retry with latest snapshot, got %q", got[0].Name)
	}
	if a.Writes() != 1 {
		t.Fatalf("expected 1 successful write, got %d", a.Writes())
	}
}

func TestAsyncSaver_CloseStopsAccepting(t *testing.T) {
	bs := NewMemStore()
	a := NewAsyncSaver(AsyncSaverOpts{Store: bs})
	ctx := context.Background()

	a.Submit(named("before"))
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	a.Submit(named("after"))
	if err := a.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	got, _ := Load(ctx, bs)
	if got[0].Name != "before" {
		t.Fatalf("expected submit after close to be ignored, got %q", got[0].Name)
	}
}

func TestAsyncSaver_NilIsNoop(t *testing.T) {
	var a *AsyncSaver
	a.Submit(named("x"))
	if err := a.Flush(context.Background()); err != nil {
		t.Fatalf("Flush on nil: %v", err)
	}
}
