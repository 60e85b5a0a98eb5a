package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

const collectionKey = "orders"

type memoryRepo struct {
	mu     sync.RWMutex
	orders map[string]*Order
	snap   snapshot.Store
}

// NewMemoryRepository returns the in-memory order collection backed by the
// snapshot store.
func NewMemoryRepository(ctx context.Context, snap snapshot.Store) (Repository, error) {
	r := &memoryRepo{orders: map[string]*Order{}, snap: snap}

	var saved []*Order
	if _, err := snap.Load(ctx, collectionKey, &saved); err != nil {
		return nil, fmt.Errorf("failed to load order snapshot: %w", err)
	}
	for _, o := range saved {
		r.orders[o.ID] = o
	}
	return r, nil
}

func (r *memoryRepo) persist(ctx context.Context) error {
	return r.snap.Save(ctx, collectionKey, r.sorted())
}

func (r *memoryRepo) sorted() []*Order {
	out := make([]*Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func clone(o *Order) *Order {
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	for i, item := range c.Items {
		c.Items[i].Sauces = append([]Sauce(nil), item.Sauces...)
	}
	c.History = append([]HistoryEntry(nil), o.History...)
	if o.Payment != nil {
		p := *o.Payment
		c.Payment = &p
	}
	return &c
}

func (r *memoryRepo) Create(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[o.ID]; exists {
		return fmt.Errorf("order %s already exists", o.ID)
	}
	r.orders[o.ID] = clone(o)
	if err := r.persist(ctx); err != nil {
		delete(r.orders, o.ID)
		return err
	}
	return nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return clone(o), nil
}

func (r *memoryRepo) List(ctx context.Context) ([]*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.sorted()
	copies := make([]*Order, len(out))
	for i, o := range out {
		copies[i] = clone(o)
	}
	return copies, nil
}

func (r *memoryRepo) Update(ctx context.Context, id string, mutate func(*Order) error) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	// mutate works on a copy; the stored order is replaced only on success,
	// and a failed snapshot write restores it.
	next := clone(stored)
	if err := mutate(next); err != nil {
		return nil, err
	}
	r.orders[id] = next
	if err := r.persist(ctx); err != nil {
		r.orders[id] = stored
		return nil, err
	}
	return clone(next), nil
}
