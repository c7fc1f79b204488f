package lots

import "context"

type Repository interface {
	Create(ctx context.Context, l Lot) error
	Update(ctx context.Context, l Lot) error
	GetByID(ctx context.Context, id string) (Lot, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Lot, error)
}
