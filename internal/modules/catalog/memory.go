package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

const collectionKey = "products"

type memoryRepo struct {
	mu       sync.RWMutex
	products map[string]*Product
	snap     snapshot.Store
}

// NewMemoryRepository returns the in-memory catalog backed by the snapshot
// store. The collection is loaded once at construction; when no snapshot
// exists yet the default menu is seeded and persisted.
func NewMemoryRepository(ctx context.Context, snap snapshot.Store) (Repository, error) {
	r := &memoryRepo{products: map[string]*Product{}, snap: snap}

	var saved []*Product
	found, err := snap.Load(ctx, collectionKey, &saved)
	if err != nil {
		return nil, fmt.Errorf("failed to load product snapshot: %w", err)
	}
	if !found {
		saved = seedProducts()
	}
	for _, p := range saved {
		r.products[p.ID] = p
	}
	if !found {
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// persist rewrites the whole collection. Callers must hold at least a read lock.
func (r *memoryRepo) persist(ctx context.Context) error {
	return r.snap.Save(ctx, collectionKey, r.sorted())
}

func (r *memoryRepo) sorted() []*Product {
	out := make([]*Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memoryRepo) List(ctx context.Context) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.sorted()
	copies := make([]*Product, len(out))
	for i, p := range out {
		c := *p
		copies[i] = &c
	}
	return copies, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	c := *p
	return &c, nil
}

func (r *memoryRepo) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.products[p.ID]; exists {
		return fmt.Errorf("product %s already exists", p.ID)
	}
	c := *p
	r.products[p.ID] = &c
	if err := r.persist(ctx); err != nil {
		delete(r.products, p.ID)
		return err
	}
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.products[p.ID]
	if !exists {
		return fmt.Errorf("product %s not found", p.ID)
	}
	c := *p
	r.products[p.ID] = &c
	if err := r.persist(ctx); err != nil {
		r.products[p.ID] = prev
		return err
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.products[id]
	if !exists {
		return fmt.Errorf("product %s not found", id)
	}
	delete(r.products, id)
	if err := r.persist(ctx); err != nil {
		r.products[id] = prev
		return err
	}
	return nil
}

func (r *memoryRepo) DecrementStock(ctx context.Context, quantities map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := make(map[string]int, len(quantities))
	for id, qty := range quantities {
		p, ok := r.products[id]
		if !ok {
			continue
		}
		prev[id] = p.Stock
		p.Stock -= qty
		if p.Stock < 0 {
			p.Stock = 0
		}
	}
	if err := r.persist(ctx); err != nil {
		for id, stock := range prev {
			r.products[id].Stock = stock
		}
		return err
	}
	return nil
}
