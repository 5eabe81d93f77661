package feed

import (
	"sync"
)

// Change is one insert/update/delete notification from the store.
type Change struct {
	Table   string `json:"table"`
	Op      string `json:"op"`
	EventID string `json:"event_id"`
}

const subscriptionBuffer = 16

// Hub fans change notifications out to subscribers. Delivery is best effort:
// a subscriber that falls behind has changes dropped rather than blocking the
// hub, because any single change is enough to trigger a full reconcile.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Change
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Change)}
}

// Subscription is a cancellable stream of changes. Close it on teardown.
type Subscription struct {
	C    <-chan Change
	once sync.Once
	stop func()
}

func (s *Subscription) Close() {
	s.once.Do(s.stop)
}

func (h *Hub) Subscribe() *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Change, subscriptionBuffer)
	if h.closed {
		close(ch)
		return &Subscription{C: ch, stop: func() {}}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	return &Subscription{
		C: ch,
		stop: func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if ch, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(ch)
			}
		},
	}
}

// Publish delivers the change to every subscriber without blocking.
func (h *Hub) Publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// Close tears down every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
