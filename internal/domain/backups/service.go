package backups

import (
	"context"
	"errors"
	"strings"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/lots"
	"livestock-management/internal/domain/records"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// exportRecordLimit evita el default de paginación del repo: un export
// lleva el historial completo de cada animal.
const exportRecordLimit = 10000

// Las fuentes se inyectan explícitamente al construir el servicio:
// nada de clientes globales con inicialización perezosa.

type AnimalSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error)
}

type LotSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]lots.Lot, error)
}

type RecordSource interface {
	ListByAnimal(ctx context.Context, animalID string, filter records.ListFilter) ([]records.AnimalRecord, error)
}

// Snapshot es el export completo del hato de un usuario, pensado para
// descarga JSON y re-importación.
type Snapshot struct {
	GeneratedAt time.Time              `json:"generated_at"`
	OwnerUserID string                 `json:"owner_user_id"`
	Animals     []animals.Animal       `json:"animals"`
	Lots        []lots.Lot             `json:"lots"`
	Records     []records.AnimalRecord `json:"records"`
}

type Service struct {
	animals AnimalSource
	lots    LotSource
	records RecordSource
	now     func() time.Time
}

func NewService(a AnimalSource, l LotSource, r RecordSource) *Service {
	return &Service{
		animals: a,
		lots:    l,
		records: r,
		now:     time.Now,
	}
}

// Export arma el snapshot del hato: animales, lotes y el historial
// completo de cada animal.
func (s *Service) Export(ctx context.Context, ownerUserID string) (Snapshot, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Snapshot{}, ErrInvalidInput
	}

	herd, err := s.animals.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Snapshot{}, err
	}

	parcels, err := s.lots.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Snapshot{}, err
	}

	allRecords := make([]records.AnimalRecord, 0)
	for _, a := range herd {
		recs, err := s.records.ListByAnimal(ctx, a.ID, records.ListFilter{Limit: exportRecordLimit})
		if err != nil {
			return Snapshot{}, err
		}
		allRecords = append(allRecords, recs...)
	}

	return Snapshot{
		GeneratedAt: s.now(),
		OwnerUserID: ownerUserID,
		Animals:     herd,
		Lots:        parcels,
		Records:     allRecords,
	}, nil
}
