package loyalty

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/uchu51/restobar-backend/internal/snapshot"
)

const (
	programsKey  = "loyalty_programs"
	customersKey = "customers"
)

type memoryRepo struct {
	mu        sync.RWMutex
	programs  map[string]*Program
	customers map[string]*Customer
	snap      snapshot.Store
}

// NewMemoryRepository loads both loyalty collections from the snapshot
// store. A missing programs snapshot seeds the default program; customers
// start empty.
func NewMemoryRepository(ctx context.Context, snap snapshot.Store) (Repository, error) {
	r := &memoryRepo{
		programs:  map[string]*Program{},
		customers: map[string]*Customer{},
		snap:      snap,
	}

	var programs []*Program
	found, err := snap.Load(ctx, programsKey, &programs)
	if err != nil {
		return nil, fmt.Errorf("failed to load program snapshot: %w", err)
	}
	if !found {
		programs = seedPrograms()
	}
	for _, p := range programs {
		r.programs[p.ID] = p
	}
	if !found {
		if err := r.persistPrograms(ctx); err != nil {
			return nil, err
		}
	}

	var customers []*Customer
	if _, err := snap.Load(ctx, customersKey, &customers); err != nil {
		return nil, fmt.Errorf("failed to load customer snapshot: %w", err)
	}
	for _, c := range customers {
		r.customers[c.Phone] = c
	}
	return r, nil
}

func (r *memoryRepo) persistPrograms(ctx context.Context) error {
	return r.snap.Save(ctx, programsKey, r.sortedPrograms())
}

func (r *memoryRepo) persistCustomers(ctx context.Context) error {
	return r.snap.Save(ctx, customersKey, r.sortedCustomers())
}

func (r *memoryRepo) sortedPrograms() []*Program {
	out := make([]*Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memoryRepo) sortedCustomers() []*Customer {
	out := make([]*Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Phone < out[j].Phone })
	return out
}

func cloneProgram(p *Program) *Program {
	c := *p
	c.Rewards = append([]Reward(nil), p.Rewards...)
	return &c
}

func cloneCustomer(c *Customer) *Customer {
	out := *c
	out.Orders = append(out.Orders[:0:0], c.Orders...)
	return &out
}

func (r *memoryRepo) ListPrograms(ctx context.Context) ([]*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sorted := r.sortedPrograms()
	out := make([]*Program, len(sorted))
	for i, p := range sorted {
		out[i] = cloneProgram(p)
	}
	return out, nil
}

func (r *memoryRepo) GetProgram(ctx context.Context, id string) (*Program, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.programs[id]
	if !ok {
		return nil, ErrProgramNotFound
	}
	return cloneProgram(p), nil
}

func (r *memoryRepo) CreateProgram(ctx context.Context, p *Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.programs[p.ID]; exists {
		return fmt.Errorf("program %s already exists", p.ID)
	}
	r.programs[p.ID] = cloneProgram(p)
	if err := r.persistPrograms(ctx); err != nil {
		delete(r.programs, p.ID)
		return err
	}
	return nil
}

func (r *memoryRepo) UpdateProgram(ctx context.Context, p *Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.programs[p.ID]
	if !exists {
		return ErrProgramNotFound
	}
	r.programs[p.ID] = cloneProgram(p)
	if err := r.persistPrograms(ctx); err != nil {
		r.programs[p.ID] = prev
		return err
	}
	return nil
}

func (r *memoryRepo) DeleteProgram(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, exists := r.programs[id]
	if !exists {
		return ErrProgramNotFound
	}
	delete(r.programs, id)
	if err := r.persistPrograms(ctx); err != nil {
		r.programs[id] = prev
		return err
	}
	return nil
}

func (r *memoryRepo) ListCustomers(ctx context.Context) ([]*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sorted := r.sortedCustomers()
	out := make([]*Customer, len(sorted))
	for i, c := range sorted {
		out[i] = cloneCustomer(c)
	}
	return out, nil
}

func (r *memoryRepo) GetCustomer(ctx context.Context, phone string) (*Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[phone]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return cloneCustomer(c), nil
}

func (r *memoryRepo) SaveCustomer(ctx context.Context, c *Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, had := r.customers[c.Phone]
	r.customers[c.Phone] = cloneCustomer(c)
	if err := r.persistCustomers(ctx); err != nil {
		if had {
			r.customers[c.Phone] = prev
		} else {
			delete(r.customers, c.Phone)
		}
		return err
	}
	return nil
}

func (r *memoryRepo) UpdateCustomer(ctx context.Context, phone string, mutate func(*Customer) error) (*Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.customers[phone]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	draft := cloneCustomer(cur)
	if err := mutate(draft); err != nil {
		return nil, err
	}
	r.customers[phone] = draft
	if err := r.persistCustomers(ctx); err != nil {
		r.customers[phone] = cur
		return nil, err
	}
	return cloneCustomer(draft), nil
}
