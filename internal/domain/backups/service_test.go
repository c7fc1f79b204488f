package backups

import (
	"context"
	"testing"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/lots"
	"livestock-management/internal/domain/records"
)

type stubAnimals struct{ herd []animals.Animal }

func (s stubAnimals) ListByOwner(ctx context.Context, owner string) ([]animals.Animal, error) {
	return s.herd, nil
}

type stubLots struct{ items []lots.Lot }

func (s stubLots) ListByOwner(ctx context.Context, owner string) ([]lots.Lot, error) {
	return s.items, nil
}

type stubRecords struct{ byAnimal map[string][]records.AnimalRecord }

func (s stubRecords) ListByAnimal(ctx context.Context, animalID string, f records.ListFilter) ([]records.AnimalRecord, error) {
	return s.byAnimal[animalID], nil
}

func TestExport_CollectsHerdLotsAndHistory(t *testing.T) {
	svc := NewService(
		stubAnimals{herd: []animals.Animal{{ID: "a1"}, {ID: "a2"}}},
		stubLots{items: []lots.Lot{{ID: "l1"}}},
		stubRecords{byAnimal: map[string][]records.AnimalRecord{
			"a1": {{ID: "r1", AnimalID: "a1"}},
			"a2": {{ID: "r2", AnimalID: "a2"}, {ID: "r3", AnimalID: "a2"}},
		}},
	)
	svc.now = func() time.Time {
		return time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	}

	snap, err := svc.Export(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if snap.OwnerUserID != "owner-1" {
		t.Fatalf("owner: %q", snap.OwnerUserID)
	}
	if len(snap.Animals) != 2 || len(snap.Lots) != 1 {
		t.Fatalf("unexpected sizes: animals=%d lots=%d", len(snap.Animals), len(snap.Lots))
	}
	if len(snap.Records) != 3 {
		t.Fatalf("expected 3 records across herd, got %d", len(snap.Records))
	}
	if snap.GeneratedAt.IsZero() {
		t.Fatal("generated_at not set")
	}
}

func TestExport_RequiresOwner(t *testing.T) {
	svc := NewService(stubAnimals{}, stubLots{}, stubRecords{})

	if _, err := svc.Export(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty owner")
	}
}
