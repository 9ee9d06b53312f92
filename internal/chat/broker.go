package chat

import "sync"

// Broker fans out "chat list changed" signals to subscribers keyed by owner id.
// Signals carry no payload: a subscriber that misses several of them while busy
// sees a single pending signal and reloads once.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[int64]chan struct{}
	nextID int64
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[int64]chan struct{})}
}

// Register adds a subscriber for ownerID and returns its id together with the
// channel signals arrive on. The id must be passed to Unregister when done.
func (b *Broker) Register(ownerID string) (int64, <-chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[ownerID]; !ok {
		b.subs[ownerID] = make(map[int64]chan struct{})
	}

	b.nextID++
	id := b.nextID
	ch := make(chan struct{}, 1)
	b.subs[ownerID][id] = ch
	return id, ch
}

// Unregister removes a subscriber. Unknown ids are ignored.
func (b *Broker) Unregister(ownerID string, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if conns, ok := b.subs[ownerID]; ok {
		delete(conns, id)
		if len(conns) == 0 {
			delete(b.subs, ownerID)
		}
	}
}

// Notify signals every subscriber of the given owners. It never blocks.
func (b *Broker) Notify(ownerIDs ...string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, owner := range ownerIDs {
		for _, ch := range b.subs[owner] {
			select {
			case ch <- struct{}{}:
			default:
				// a signal is already pending
			}
		}
	}
}

// Subscribers returns the number of live subscribers for ownerID.
func (b *Broker) Subscribers(ownerID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[ownerID])
}
