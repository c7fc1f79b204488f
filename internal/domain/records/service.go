package records

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Type       RecordType
	OccurredAt time.Time
	Title      string
	Notes      string
	WeightKg   float64
	Source     Source
}

func (s *Service) Create(ctx context.Context, animalID string, actor Actor, in CreateInput) (AnimalRecord, error) {
	if strings.TrimSpace(animalID) == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	if !validType(in.Type) {
		return AnimalRecord{}, ErrInvalidInput
	}
	if in.OccurredAt.IsZero() {
		return AnimalRecord{}, ErrInvalidInput
	}
	if actor.Type == "" || strings.TrimSpace(actor.ID) == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	// El peso solo tiene sentido en registros de pesaje.
	if in.Type == RecordTypeWeightRecorded && in.WeightKg <= 0 {
		return AnimalRecord{}, ErrInvalidInput
	}
	if in.Type != RecordTypeWeightRecorded && in.WeightKg != 0 {
		return AnimalRecord{}, ErrInvalidInput
	}

	now := s.now()

	src := in.Source
	if src == "" {
		src = SourceManual
	}

	rec := AnimalRecord{
		ID:         uuid.NewString(),
		AnimalID:   animalID,
		Type:       in.Type,
		OccurredAt: in.OccurredAt,
		RecordedAt: now,
		Title:      strings.TrimSpace(in.Title),
		Notes:      strings.TrimSpace(in.Notes),
		WeightKg:   in.WeightKg,
		Actor:      actor,
		Source:     src,
		Status:     RecordStatusActive,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return AnimalRecord{}, err
	}
	return rec, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]AnimalRecord, error) {
	return s.repo.ListByAnimal(ctx, animalID, filter)
}

// Void marca el registro como anulado (no se borra).
func (s *Service) Void(ctx context.Context, id string) (AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AnimalRecord{}, ErrInvalidInput
	}
	if err := s.repo.Void(ctx, id); err != nil {
		return AnimalRecord{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func validType(t RecordType) bool {
	switch t {
	case RecordTypeVaccine, RecordTypeDeworming, RecordTypeTreatment,
		RecordTypeWeightRecorded, RecordTypeBirth, RecordTypeBreedingService,
		RecordTypeStatusChange, RecordTypeNote:
		return true
	default:
		return false
	}
}
