package memory

import (
	"context"
	"errors"
	"sync"

	"livestock-management/internal/domain/grants"
)

type grantsRepo struct {
	mu   sync.RWMutex
	byID map[string]grants.Grant
}

func NewGrantsRepo() grants.Repository {
	return &grantsRepo{
		byID: make(map[string]grants.Grant),
	}
}

func (r *grantsRepo) Create(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantsRepo) Update(ctx context.Context, g grants.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; !exists {
		return ErrNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantsRepo) GetByID(ctx context.Context, id string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return grants.Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *grantsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grants.Grant, 0)
	for _, g := range r.byID {
		if g.OwnerUserID == ownerUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantsRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]grants.Grant, 0)
	for _, g := range r.byID {
		if g.GranteeUserID == granteeUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantsRepo) GetActiveGrant(ctx context.Context, ownerUserID, granteeUserID string) (grants.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner grants.Grant
	has := false

	for _, g := range r.byID {
		if g.OwnerUserID != ownerUserID {
			continue
		}
		if g.GranteeUserID != granteeUserID {
			continue
		}
		if g.Status != grants.StatusActive {
			continue
		}

		if !has {
			winner = g
			has = true
			continue
		}
		if g.UpdatedAt.After(winner.UpdatedAt) {
			winner = g
			continue
		}
		if g.UpdatedAt.Equal(winner.UpdatedAt) && g.CreatedAt.After(winner.CreatedAt) {
			winner = g
		}
	}

	if !has {
		return grants.Grant{}, ErrNotFound
	}
	return winner, nil
}
