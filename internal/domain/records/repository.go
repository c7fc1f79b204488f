package records

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, rec AnimalRecord) error
	GetByID(ctx context.Context, id string) (AnimalRecord, error)
	ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]AnimalRecord, error)
	Void(ctx context.Context, id string) error
}

type ListFilter struct {
	Types []RecordType
	From  *time.Time
	To    *time.Time
	Limit int
}
