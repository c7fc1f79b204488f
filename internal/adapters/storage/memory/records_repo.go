package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"livestock-management/internal/domain/records"
)

type recordsRepo struct {
	mu   sync.RWMutex
	byID map[string]records.AnimalRecord
}

func NewRecordsRepo() records.Repository {
	return &recordsRepo{
		byID: make(map[string]records.AnimalRecord),
	}
}

func (r *recordsRepo) Create(ctx context.Context, rec records.AnimalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec.ID == "" {
		return errors.New("record id required")
	}
	if _, exists := r.byID[rec.ID]; exists {
		return errors.New("record already exists")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *recordsRepo) GetByID(ctx context.Context, id string) (records.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return records.AnimalRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *recordsRepo) ListByAnimal(ctx context.Context, animalID string, filter records.ListFilter) ([]records.AnimalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]records.AnimalRecord, 0)

	for _, rec := range r.byID {
		if rec.AnimalID != animalID {
			continue
		}

		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if rec.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		if filter.From != nil && rec.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.OccurredAt.After(*filter.To) {
			continue
		}

		out = append(out, rec)
	}

	// Timeline: más reciente primero.
	sort.Slice(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *recordsRepo) Void(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	rec.Status = records.RecordStatusVoided
	r.byID[id] = rec
	return nil
}
