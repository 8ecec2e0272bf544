package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/core/domain"
)

type fakeRegistry struct {
	mu     sync.Mutex
	active bool
	wake   chan struct{}
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{wake: make(chan struct{}, 1)}
}

func (r *fakeRegistry) Register(string) {
	r.mu.Lock()
	r.active = true
	r.mu.Unlock()
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *fakeRegistry) Unregister(string) {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
}

func (r *fakeRegistry) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *fakeRegistry) Wake() <-chan struct{} { return r.wake }

func TestSyncService_LoadSuccess(t *testing.T) {
	gw := &stubGateway{snapshot: domain.Snapshot{Jobs: seedJobs()}}
	store := NewSnapshotStore()
	svc := NewSyncService(gw, store, newFakeRegistry(), time.Second, zerolog.Nop())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := svc.Ready(); err != nil {
		t.Fatalf("Ready after load: %v", err)
	}
	if got := len(svc.Snapshot().Jobs); got != 3 {
		t.Fatalf("snapshot jobs = %d, want 3", got)
	}
}

func TestSyncService_FailedLoadBlocksForGood(t *testing.T) {
	gw := &stubGateway{initialErr: errors.New("connection refused")}
	store := NewSnapshotStore()
	svc := NewSyncService(gw, store, newFakeRegistry(), time.Second, zerolog.Nop())

	if err := svc.Load(context.Background()); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("Load error = %v, want ErrGatewayUnavailable", err)
	}
	if err := svc.Ready(); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("Ready = %v, want ErrGatewayUnavailable", err)
	}

	// A later successful fetch must not unblock the dashboard; the failure
	// holds until restart.
	gw.initialErr = nil
	gw.snapshot = domain.Snapshot{Jobs: seedJobs()}
	svc.poll(context.Background())

	if err := svc.Ready(); !errors.Is(err, domain.ErrGatewayUnavailable) {
		t.Fatalf("Ready after late poll = %v, want ErrGatewayUnavailable", err)
	}
	if got := len(svc.Snapshot().Jobs); got != 0 {
		t.Fatalf("blocked dashboard must not adopt late snapshots, got %d jobs", got)
	}
}

func TestSyncService_PollFailureKeepsSnapshot(t *testing.T) {
	gw := &stubGateway{snapshot: domain.Snapshot{Jobs: seedJobs()}}
	store := NewSnapshotStore()
	svc := NewSyncService(gw, store, newFakeRegistry(), time.Second, zerolog.Nop())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	gw.initialErr = errors.New("timeout")
	svc.poll(context.Background())

	if err := svc.Ready(); err != nil {
		t.Fatalf("a failed poll must not flip readiness: %v", err)
	}
	if got := len(svc.Snapshot().Jobs); got != 3 {
		t.Fatalf("previous snapshot must survive a failed poll, got %d jobs", got)
	}
}

func TestSyncService_PollReplacesSnapshot(t *testing.T) {
	gw := &stubGateway{snapshot: domain.Snapshot{Jobs: seedJobs()}}
	store := NewSnapshotStore()
	svc := NewSyncService(gw, store, newFakeRegistry(), time.Second, zerolog.Nop())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	gw.mu.Lock()
	gw.snapshot = domain.Snapshot{Jobs: seedJobs()[:1]}
	gw.mu.Unlock()
	svc.poll(context.Background())

	if got := len(svc.Snapshot().Jobs); got != 1 {
		t.Fatalf("poll must replace the snapshot wholesale, got %d jobs", got)
	}
}

func TestSyncService_RunPollsOnlyWithActiveSessions(t *testing.T) {
	gw := &stubGateway{snapshot: domain.Snapshot{Jobs: seedJobs()}}
	store := NewSnapshotStore()
	registry := newFakeRegistry()
	svc := NewSyncService(gw, store, registry, 5*time.Millisecond, zerolog.Nop())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	loadCalls := gw.callCount()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	// No session: the loop must stay parked on the wake channel.
	time.Sleep(30 * time.Millisecond)
	if gw.callCount() != loadCalls {
		t.Fatal("poller must not fetch while no session is active")
	}

	registry.Register("s1")
	deadline := time.Now().Add(time.Second)
	for gw.callCount() == loadCalls {
		if time.Now().After(deadline) {
			t.Fatal("poller never woke after session registration")
		}
		time.Sleep(2 * time.Millisecond)
	}

	registry.Unregister("s1")
	time.Sleep(30 * time.Millisecond)
	idle := gw.callCount()
	time.Sleep(30 * time.Millisecond)
	if gw.callCount() != idle {
		t.Fatal("poller must stop once the last session ends")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
