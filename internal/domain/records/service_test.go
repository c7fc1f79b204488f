package records

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]AnimalRecord
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]AnimalRecord{}}
}

func (r *testRepo) Create(ctx context.Context, rec AnimalRecord) error {
	if rec.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[rec.ID] = rec
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (AnimalRecord, error) {
	rec, ok := r.byID[id]
	if !ok {
		return AnimalRecord{}, errRepoNotFound
	}
	return rec, nil
}

func (r *testRepo) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]AnimalRecord, error) {
	out := make([]AnimalRecord, 0)
	for _, rec := range r.byID {
		if rec.AnimalID == animalID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) Void(ctx context.Context, id string) error {
	rec, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	rec.Status = RecordStatusVoided
	r.byID[id] = rec
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo
}

var testActor = Actor{Type: ActorTypeOwnerUser, ID: "owner-1"}

// -------------------------
// Tests
// -------------------------

func TestCreate_DefaultsSourceAndStatus(t *testing.T) {
	svc, _ := newTestService()

	rec, err := svc.Create(context.Background(), "animal-1", testActor, CreateInput{
		Type:       RecordTypeVaccine,
		OccurredAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Title:      "Aftosa",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if rec.Source != SourceManual {
		t.Fatalf("expected manual source, got %q", rec.Source)
	}
	if rec.Status != RecordStatusActive {
		t.Fatalf("expected active status, got %q", rec.Status)
	}
	if rec.RecordedAt.IsZero() {
		t.Fatal("recorded_at not set")
	}
}

func TestCreate_WeightOnlyForWeightRecords(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	occurred := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	// Pesaje sin peso => inválido
	_, err := svc.Create(ctx, "animal-1", testActor, CreateInput{
		Type:       RecordTypeWeightRecorded,
		OccurredAt: occurred,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weight record without weight, got %v", err)
	}

	// Peso en un tipo que no es pesaje => inválido
	_, err = svc.Create(ctx, "animal-1", testActor, CreateInput{
		Type:       RecordTypeNote,
		OccurredAt: occurred,
		WeightKg:   420,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for weight on note, got %v", err)
	}

	// Pesaje válido
	rec, err := svc.Create(ctx, "animal-1", testActor, CreateInput{
		Type:       RecordTypeWeightRecorded,
		OccurredAt: occurred,
		WeightKg:   420,
	})
	if err != nil {
		t.Fatalf("create weight record: %v", err)
	}
	if rec.WeightKg != 420 {
		t.Fatalf("expected 420 kg, got %v", rec.WeightKg)
	}
}

func TestCreate_RejectsUnknownType(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "animal-1", testActor, CreateInput{
		Type:       RecordType("HAIRCUT"),
		OccurredAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestVoid_MarksWithoutDeleting(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, "animal-1", testActor, CreateInput{
		Type:       RecordTypeTreatment,
		OccurredAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		Title:      "Antibiótico",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	voided, err := svc.Void(ctx, rec.ID)
	if err != nil {
		t.Fatalf("void: %v", err)
	}
	if voided.Status != RecordStatusVoided {
		t.Fatalf("expected voided, got %q", voided.Status)
	}

	// Sigue existiendo para auditoría.
	if _, err := repo.GetByID(ctx, rec.ID); err != nil {
		t.Fatalf("voided record must remain readable: %v", err)
	}
}
