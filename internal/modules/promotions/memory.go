package promotions

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

const collectionKey = "promotions"

type memoryRepo struct {
	mu     sync.RWMutex
	promos map[string]*Promotion
	snap   snapshot.Store
}

// NewMemoryRepository returns the in-memory promotion catalog backed by the
// snapshot store. First boot seeds the default promotions.
func NewMemoryRepository(ctx context.Context, snap snapshot.Store) (Repository, error) {
	r := &memoryRepo{promos: map[string]*Promotion{}, snap: snap}

	var saved []*Promotion
	found, err := snap.Load(ctx, collectionKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotion snapshot: %w", err)
	}
	if !found {
		saved = seedPromotions()
	}
	for _, p := range saved {
		r.promos[p.ID] = p
	}
	if !found {
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *memoryRepo) persist(ctx context.Context) error {
	return r.snap.Save(ctx, collectionKey, r.sorted())
}

func (r *memoryRepo) sorted() []*Promotion {
	out := make([]*Promotion, 0, len(r.promos))
	for _, p := range r.promos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clone(p *Promotion) *Promotion {
	c := *p
	c.Conditions.Products = append([]ComboItem(nil), p.Conditions.Products...)
	return &c
}

func (r *memoryRepo) List(ctx context.Context) ([]*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.sorted()
	copies := make([]*Promotion, len(out))
	for i, p := range out {
		copies[i] = clone(p)
	}
	return copies, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (*Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.promos[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPromotionNotFound, id)
	}
	return clone(p), nil
}

func (r *memoryRepo) Create(ctx context.Context, p *Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.promos[p.ID]; exists {
		return fmt.Errorf("promotion %s already exists", p.ID)
	}
	r.promos[p.ID] = clone(p)
	if err := r.persist(ctx); err != nil {
		delete(r.promos, p.ID)
		return err
	}
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, p *Promotion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.promos[p.ID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrPromotionNotFound, p.ID)
	}
	r.promos[p.ID] = clone(p)
	if err := r.persist(ctx); err != nil {
		r.promos[p.ID] = prev
		return err
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.promos[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrPromotionNotFound, id)
	}
	delete(r.promos, id)
	if err := r.persist(ctx); err != nil {
		r.promos[id] = prev
		return err
	}
	return nil
}
