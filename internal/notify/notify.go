// Package notify provides listener lists for change notifications.
//
// A List delivers each notification synchronously to its observers in
// subscription order, outside any caller lock. Delivery rounds are
// serialised: a Notify from another goroutine waits for the running round
// and then gets its own. If an observer triggers another notification on
// the same List from inside its callback, that nested notification is
// dropped rather than queued or re-entered, so every outermost mutation
// produces exactly one delivery round.
//
// Observers must not block on another goroutine that notifies the same
// List; that goroutine waits for the observer's round to finish.
package notify

import (
	"bytes"
	"runtime"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
)

// Observer is called for each delivered notification.
type Observer[T any] func(v T)

// Subscription represents an active observer subscription.
type Subscription struct {
	id     uint64
	cancel func(id uint64)
	once   sync.Once
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(func() { s.cancel(s.id) })
}

// List is a set of observers for values of type T.
// The zero value is ready to use.
type List[T any] struct {
	mu        sync.Mutex
	observers map[uint64]Observer[T]
	nextID    uint64
	closed    bool

	deliver sync.Mutex
	drainer atomic.Uint64
	skipped atomic.Uint64
}

// New creates an empty List.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Subscribe registers an observer.
func (l *List[T]) Subscribe(observer Observer[T]) *Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.observers == nil {
		l.observers = make(map[uint64]Observer[T])
	}
	l.nextID++
	id := l.nextID
	if observer != nil && !l.closed {
		l.observers[id] = observer
	}
	return &Subscription{id: id, cancel: l.unsubscribe}
}

// Notify delivers v to every observer, waiting for a round running on
// another goroutine to finish first. It returns false if called from
// inside an observer of this List, in which case v is skipped.
func (l *List[T]) Notify(v T) bool {
	id := goroutineID()
	if id != 0 && l.drainer.Load() == id {
		l.skipped.Add(1)
		return false
	}

	l.deliver.Lock()
	l.drainer.Store(id)
	defer func() {
		l.drainer.Store(0)
		l.deliver.Unlock()
	}()

	for _, obs := range l.snapshot() {
		obs(v)
	}
	return true
}

// Draining returns true while a delivery round is in progress.
func (l *List[T]) Draining() bool {
	return l.drainer.Load() != 0
}

// Skipped returns how many notifications were dropped as nested.
func (l *List[T]) Skipped() uint64 {
	return l.skipped.Load()
}

// Len returns the number of observers.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.observers)
}

// Close removes every observer. Later subscriptions are ignored.
func (l *List[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observers = nil
	l.closed = true
}

func (l *List[T]) snapshot() []Observer[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.observers) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(l.observers))
	for id := range l.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Observer[T], len(ids))
	for i, id := range ids {
		out[i] = l.observers[id]
	}
	return out
}

func (l *List[T]) unsubscribe(id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.observers, id)
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, parsed from the
// header line of its stack trace, or 0 if the header is unrecognised.
func goroutineID() uint64 {
	var buf [64]byte
	b := bytes.TrimPrefix(buf[:runtime.Stack(buf[:], false)], goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
