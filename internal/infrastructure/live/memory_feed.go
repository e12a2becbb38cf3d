package live

import (
	"context"
	"sync"
)

// MemoryFeed is the in-process feed used for single-node deployments and
// tests. Each subscriber has a one-slot signal channel drained by its own
// goroutine, so notify storms coalesce instead of queueing and a slow
// subscriber never blocks a writer.
type MemoryFeed struct {
	mu   sync.Mutex
	subs map[string]map[int]*memorySub
	next int
}

type memorySub struct {
	ch   chan struct{}
	done chan struct{}
	once sync.Once
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[int]*memorySub)}
}

func feedKey(collection, scope string) string {
	return collection + ":" + scope
}

func (f *MemoryFeed) NotifyChange(ctx context.Context, scope, collection string) {
	f.dispatch(scope, collection)
}

// dispatch fans a signal out to every subscriber of the key without
// blocking; a subscriber with a signal already pending is left as is.
func (f *MemoryFeed) dispatch(scope, collection string) {
	key := feedKey(collection, scope)

	f.mu.Lock()
	subs := make([]*memorySub, 0, len(f.subs[key]))
	for _, s := range f.subs[key] {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		select {
		case s.ch <- struct{}{}:
		default:
		}
	}
}

func (f *MemoryFeed) Subscribe(scope, collection string, fn func()) func() {
	key := feedKey(collection, scope)
	sub := &memorySub{
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	f.mu.Lock()
	id := f.next
	f.next++
	if f.subs[key] == nil {
		f.subs[key] = make(map[int]*memorySub)
	}
	f.subs[key][id] = sub
	f.mu.Unlock()

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case <-sub.ch:
				fn()
			}
		}
	}()

	return func() {
		sub.once.Do(func() {
			f.mu.Lock()
			delete(f.subs[key], id)
			if len(f.subs[key]) == 0 {
				delete(f.subs, key)
			}
			f.mu.Unlock()
			close(sub.done)
		})
	}
}
