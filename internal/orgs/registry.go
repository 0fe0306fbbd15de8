package orgs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Discardable is anything the registry can abandon when it expires.
type Discardable interface {
	Discard()
}

type registryEntry[T Discardable] struct {
	owner    string
	value    T
	openedAt time.Time
}

// Registry keeps the open dialogs of all sessions, keyed by a random id and
// scoped to the user that opened them.
type Registry[T Discardable] struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]registryEntry[T]
}

func NewRegistry[T Discardable](clock clockwork.Clock, ttl time.Duration) *Registry[T] {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Registry[T]{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]registryEntry[T]),
	}
}

// Add stores value for owner and returns its id.
func (r *Registry[T]) Add(owner string, value T) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.entries[id] = registryEntry[T]{owner: owner, value: value, openedAt: r.clock.Now()}
	r.mu.Unlock()
	return id
}

// Get returns the dialog id if it belongs to owner.
func (r *Registry[T]) Get(id, owner string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[id]
	if !ok || entry.owner != owner {
		var zero T
		return zero, ErrDialogNotFound
	}
	return entry.value, nil
}

// Remove forgets id without discarding it.
func (r *Registry[T]) Remove(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep discards and removes dialogs opened more than the TTL ago.
func (r *Registry[T]) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := r.clock.Now().Add(-r.ttl)

	var expired []T
	r.mu.Lock()
	for id, entry := range r.entries {
		if entry.openedAt.Before(cutoff) {
			expired = append(expired, entry.value)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, value := range expired {
		value.Discard()
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done. onSweep, when set, observes
// each pass.
func (r *Registry[T]) Run(ctx context.Context, interval time.Duration, onSweep func(removed, remaining int)) error {
	if interval <= 0 {
		return nil
	}
	ticker := r.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			removed := r.Sweep()
			if onSweep != nil {
				onSweep(removed, r.Len())
			}
		}
	}
}
