package lots

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"livestock-management/internal/domain/animals"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrLotFull      = errors.New("lot at capacity")
)

// AnimalDirectory es lo mínimo que lots necesita de animals para
// calcular ocupación y mover animales, sin acoplar los módulos.
type AnimalDirectory interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error)
	SetLot(ctx context.Context, animalID, lotID string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalDirectory
	now     func() time.Time
}

func NewService(repo Repository, dir AnimalDirectory) *Service {
	return &Service{
		repo:    repo,
		animals: dir,
		now:     time.Now,
	}
}

type CreateInput struct {
	Name         string
	AreaHectares float64
	Capacity     int
	Notes        string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Lot, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Lot{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Lot{}, ErrInvalidInput
	}
	if in.AreaHectares < 0 || in.Capacity < 0 {
		return Lot{}, ErrInvalidInput
	}

	now := s.now()
	l := Lot{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		AreaHectares: in.AreaHectares,
		Capacity:     in.Capacity,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return Lot{}, err
	}
	return l, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	AreaHectares *float64
	Capacity     *int
	Notes        *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Lot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Lot{}, ErrInvalidInput
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Lot{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Lot{}, ErrInvalidInput
		}
		l.Name = name
	}
	if in.AreaHectares != nil {
		if *in.AreaHectares < 0 {
			return Lot{}, ErrInvalidInput
		}
		l.AreaHectares = *in.AreaHectares
	}
	if in.Capacity != nil {
		if *in.Capacity < 0 {
			return Lot{}, ErrInvalidInput
		}
		l.Capacity = *in.Capacity
	}
	if in.Notes != nil {
		l.Notes = strings.TrimSpace(*in.Notes)
	}

	l.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, l); err != nil {
		return Lot{}, err
	}
	return l, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Lot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Lot, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Assign mueve un animal al lote, respetando la capacidad si está
// definida. El animal debe ser del mismo dueño del lote.
func (s *Service) Assign(ctx context.Context, lotID, animalID string) (animals.Animal, error) {
	l, err := s.repo.GetByID(ctx, lotID)
	if err != nil {
		return animals.Animal{}, ErrNotFound
	}

	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return animals.Animal{}, ErrNotFound
	}
	if a.OwnerUserID != l.OwnerUserID {
		return animals.Animal{}, ErrInvalidInput
	}

	if l.Capacity > 0 {
		occ, err := s.OccupancyOf(ctx, l)
		if err != nil {
			return animals.Animal{}, err
		}
		// Mover dentro del mismo lote no cuenta contra la capacidad.
		if occ.Full && a.LotID != l.ID {
			return animals.Animal{}, ErrLotFull
		}
	}

	return s.animals.SetLot(ctx, animalID, l.ID)
}

// Unassign saca el animal de su lote actual.
func (s *Service) Unassign(ctx context.Context, lotID, animalID string) (animals.Animal, error) {
	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return animals.Animal{}, ErrNotFound
	}
	if a.LotID != strings.TrimSpace(lotID) {
		return animals.Animal{}, ErrInvalidInput
	}
	return s.animals.SetLot(ctx, animalID, "")
}

// OccupancyOf cuenta las cabezas asignadas al lote.
func (s *Service) OccupancyOf(ctx context.Context, l Lot) (Occupancy, error) {
	herd, err := s.animals.ListByOwner(ctx, l.OwnerUserID)
	if err != nil {
		return Occupancy{}, err
	}

	count := 0
	for _, a := range herd {
		if a.LotID == l.ID {
			count++
		}
	}

	return Occupancy{
		LotID:     l.ID,
		HeadCount: count,
		Capacity:  l.Capacity,
		Full:      l.Capacity > 0 && count >= l.Capacity,
	}, nil
}
