package notify

import (
	"context"
	"sync"

	portsrepo "github.com/saricycle/saricycle_backend/internal/core/ports/repositories"
)

// InMemoryNotifier is a process-local bus. It backs single-instance
// deployments without Redis and serves as the test double for subscriptions.
type InMemoryNotifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewInMemoryNotifier() *InMemoryNotifier {
	return &InMemoryNotifier{subs: make(map[string]map[int]chan struct{})}
}

var _ portsrepo.Notifier = (*InMemoryNotifier)(nil)

// Publish signals every subscriber on the channel without blocking. A
// subscriber with a signal already pending is skipped; coalescing is fine
// because subscribers re-read the full value set per signal.
func (n *InMemoryNotifier) Publish(_ context.Context, channel string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[channel] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe registers a signal channel. Cancel is idempotent and removes the
// registration before closing the channel, so no signal arrives after it
// returns.
func (n *InMemoryNotifier) Subscribe(_ context.Context, channel string) (<-chan struct{}, func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[channel] == nil {
		n.subs[channel] = make(map[int]chan struct{})
	}
	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[channel][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs[channel], id)
			if len(n.subs[channel]) == 0 {
				delete(n.subs, channel)
			}
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}
