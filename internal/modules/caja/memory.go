package caja

import (
	"context"
	"fmt"
	"sync"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

const collectionKey = "caja_session"

type memoryRepo struct {
	mu      sync.Mutex
	session *Session
	snap    snapshot.Store
}

// NewMemoryRepository returns the in-memory till backed by the snapshot store.
func NewMemoryRepository(ctx context.Context, snap snapshot.Store) (Repository, error) {
	r := &memoryRepo{snap: snap}

	var saved Session
	found, err := snap.Load(ctx, collectionKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("failed to load caja snapshot: %w", err)
	}
	if found {
		r.session = &saved
	}
	return r, nil
}

func clone(s *Session) *Session {
	c := *s
	c.SalesByMethod = make(map[string]float64, len(s.SalesByMethod))
	for k, v := range s.SalesByMethod {
		c.SalesByMethod[k] = v
	}
	c.Movements = append([]Movement(nil), s.Movements...)
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		c.ClosedAt = &t
	}
	if s.CountedCash != nil {
		v := *s.CountedCash
		c.CountedCash = &v
	}
	if s.Variance != nil {
		v := *s.Variance
		c.Variance = &v
	}
	return &c
}

func (r *memoryRepo) Get(ctx context.Context) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, ErrNoSession
	}
	return clone(r.session), nil
}

func (r *memoryRepo) Replace(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.session
	r.session = clone(s)
	if err := r.snap.Save(ctx, collectionKey, r.session); err != nil {
		r.session = prev
		return err
	}
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, mutate func(*Session) error) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil, ErrNoSession
	}
	prev := r.session
	next := clone(r.session)
	if err := mutate(next); err != nil {
		return nil, err
	}
	r.session = next
	if err := r.snap.Save(ctx, collectionKey, r.session); err != nil {
		r.session = prev
		return nil, err
	}
	return clone(next), nil
}
