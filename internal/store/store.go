package store

import (
	"sync"
)

type Store[T any] struct {
	mu       sync.RWMutex
	notifyMu sync.Mutex
	value    T
	nextID   uint64
	subs     map[uint64]func(T)
	order    []uint64
}

func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[uint64]func(T)),
	}
}

func (s *Store[T]) Load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Subscribers must not call Replace on the same store.
func (s *Store[T]) Replace(v T) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()
	for _, fn := range subs {
		fn(v)
	}
}

func (s *Store[T]) Update(fn func(T) T) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()
	for _, sub := range subs {
		sub(v)
	}
}

func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.notifyMu.Lock()
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	v := s.value
	s.mu.Unlock()
	fn(v)
	s.notifyMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			for i, sid := range s.order {
				if sid == id {
					s.order = append(s.order[:i:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store[T]) snapshot() []func(T) {
	subs := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	return subs
}
