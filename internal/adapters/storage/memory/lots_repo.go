package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"livestock-management/internal/domain/lots"
)

type lotsRepo struct {
	mu   sync.RWMutex
	byID map[string]lots.Lot
}

func NewLotsRepo() lots.Repository {
	return &lotsRepo{
		byID: make(map[string]lots.Lot),
	}
}

func (r *lotsRepo) Create(ctx context.Context, l lots.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		return errors.New("lot id required")
	}
	if _, exists := r.byID[l.ID]; exists {
		return errors.New("lot already exists")
	}
	r.byID[l.ID] = l
	return nil
}

func (r *lotsRepo) Update(ctx context.Context, l lots.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		return errors.New("lot id required")
	}
	if _, exists := r.byID[l.ID]; !exists {
		return ErrNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *lotsRepo) GetByID(ctx context.Context, id string) (lots.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return lots.Lot{}, ErrNotFound
	}
	return l, nil
}

func (r *lotsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]lots.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lots.Lot, 0)
	for _, l := range r.byID {
		if l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
