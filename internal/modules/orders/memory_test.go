package orders

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakyStore loads nothing and fails writes on demand.
type flakyStore struct {
	fail bool
}

func (s *flakyStore) Load(ctx context.Context, collection string, v interface{}) (bool, error) {
	return false, nil
}

func (s *flakyStore) Save(ctx context.Context, collection string, v interface{}) error {
	if s.fail {
		return errors.New("snapshot write failed")
	}
	return nil
}

func TestCreateRollsBackWhenSnapshotFails(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{}
	repo, err := NewMemoryRepository(ctx, store)
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}

	store.fail = true
	o := &Order{ID: "PED-20260829-0001", Status: StatusPreparing, CreatedAt: time.Now()}
	if err := repo.Create(ctx, o); err == nil {
		t.Fatal("expected an error when the snapshot write fails")
	}
	if _, err := repo.Get(ctx, o.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("a failed create must not leave the order behind, got %v", err)
	}
}

func TestUpdateRollsBackWhenSnapshotFails(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{}
	repo, err := NewMemoryRepository(ctx, store)
	if err != nil {
		t.Fatalf("building repository: %v", err)
	}
	o := &Order{ID: "PED-20260829-0002", Status: StatusPreparing, CreatedAt: time.Now()}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("creating order: %v", err)
	}

	store.fail = true
	_, err = repo.Update(ctx, o.ID, func(o *Order) error {
		o.Status = StatusReady
		return nil
	})
	if err == nil {
		t.Fatal("expected an error when the snapshot write fails")
	}

	got, err := repo.Get(ctx, o.ID)
	if err != nil {
		t.Fatalf("reading order back: %v", err)
	}
	if got.Status != StatusPreparing {
		t.Errorf("a failed update must keep the stored order unchanged, got %s", got.Status)
	}
}
