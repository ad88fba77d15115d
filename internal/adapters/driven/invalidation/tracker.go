// Package invalidation provides an in-process change feed. Stores call
// Notify after each committed write; live queries subscribe to the tables
// they read and recompute when signalled.
package invalidation

import (
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ChangeFeed = (*Tracker)(nil)

type subscription struct {
	tables map[string]struct{} // empty means every table
	ch     chan struct{}
}

func (s *subscription) wants(table string) bool {
	if len(s.tables) == 0 {
		return true
	}
	_, ok := s.tables[table]
	return ok
}

// Tracker is a driven.ChangeFeed backed by coalescing channels.
type Tracker struct {
	version atomic.Uint64

	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]*subscription)}
}

// Subscribe registers interest in tables. With no tables the subscriber
// is signalled for every write.
func (t *Tracker) Subscribe(tables ...string) (<-chan struct{}, func()) {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, table := range tables {
		sub.tables[table] = struct{}{}
	}

	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = sub
	t.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			close(sub.ch)
			t.mu.Unlock()
		})
	}
}

// Notify signals every subscriber of the tables without blocking.
func (t *Tracker) Notify(tables ...string) {
	t.version.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		for _, table := range tables {
			if !sub.wants(table) {
				continue
			}
			select {
			case sub.ch <- struct{}{}:
			default:
			}
			break
		}
	}
}

// Version returns the number of Notify calls so far.
func (t *Tracker) Version() uint64 {
	return t.version.Load()
}

// Subscribers returns the number of active subscriptions.
func (t *Tracker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
