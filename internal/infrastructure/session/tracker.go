package session

import "sync"

// Tracker is the process-local registry of live sessions. The poller asks
// Active before each fetch and blocks on Wake while no session exists.
type Tracker struct {
	mu     sync.Mutex
	active map[string]struct{}
	wake   chan struct{}
}

func NewTracker() *Tracker {
	return &Tracker{
		active: make(map[string]struct{}),
		wake:   make(chan struct{}, 1),
	}
}

func (t *Tracker) Register(sessionID string) {
	t.mu.Lock()
	wasEmpty := len(t.active) == 0
	t.active[sessionID] = struct{}{}
	t.mu.Unlock()

	if wasEmpty {
		select {
		case t.wake <- struct{}{}:
		default:
		}
	}
}

func (t *Tracker) Unregister(sessionID string) {
	t.mu.Lock()
	delete(t.active, sessionID)
	t.mu.Unlock()
}

func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.active) > 0
}

func (t *Tracker) Wake() <-chan struct{} {
	return t.wake
}
