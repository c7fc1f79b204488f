package lots

import (
	"context"
	"errors"
	"testing"
	"time"

	"livestock-management/internal/domain/animals"
)

// -------------------------
// Test repos (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Lot
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Lot{}}
}

func (r *testRepo) Create(ctx context.Context, l Lot) error {
	r.byID[l.ID] = l
	return nil
}

func (r *testRepo) Update(ctx context.Context, l Lot) error {
	if _, ok := r.byID[l.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[l.ID] = l
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Lot, error) {
	l, ok := r.byID[id]
	if !ok {
		return Lot{}, errRepoNotFound
	}
	return l, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Lot, error) {
	out := make([]Lot, 0)
	for _, l := range r.byID {
		if l.OwnerUserID == ownerUserID {
			out = append(out, l)
		}
	}
	return out, nil
}

// testDirectory es un AnimalDirectory mínimo.
type testDirectory struct {
	byID map[string]animals.Animal
}

func newTestDirectory() *testDirectory {
	return &testDirectory{byID: map[string]animals.Animal{}}
}

func (d *testDirectory) add(id, owner string) {
	d.byID[id] = animals.Animal{ID: id, OwnerUserID: owner}
}

func (d *testDirectory) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	a, ok := d.byID[id]
	if !ok {
		return animals.Animal{}, errRepoNotFound
	}
	return a, nil
}

func (d *testDirectory) ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	for _, a := range d.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *testDirectory) SetLot(ctx context.Context, animalID, lotID string) (animals.Animal, error) {
	a, ok := d.byID[animalID]
	if !ok {
		return animals.Animal{}, errRepoNotFound
	}
	a.LotID = lotID
	d.byID[animalID] = a
	return a, nil
}

func newTestService() (*Service, *testDirectory) {
	repo := newTestRepo()
	dir := newTestDirectory()
	svc := NewService(repo, dir)
	svc.now = func() time.Time {
		return time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, dir
}

// -------------------------
// Tests
// -------------------------

func TestAssign_RespectsCapacity(t *testing.T) {
	svc, dir := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Potrero 1", Capacity: 2})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}

	dir.add("a1", "owner-1")
	dir.add("a2", "owner-1")
	dir.add("a3", "owner-1")

	for _, id := range []string{"a1", "a2"} {
		if _, err := svc.Assign(ctx, l.ID, id); err != nil {
			t.Fatalf("assign %s: %v", id, err)
		}
	}

	_, err = svc.Assign(ctx, l.ID, "a3")
	if !errors.Is(err, ErrLotFull) {
		t.Fatalf("expected ErrLotFull, got %v", err)
	}
}

func TestAssign_SameLotDoesNotCountAgainstCapacity(t *testing.T) {
	svc, dir := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Potrero 1", Capacity: 1})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}

	dir.add("a1", "owner-1")
	if _, err := svc.Assign(ctx, l.ID, "a1"); err != nil {
		t.Fatalf("first assign: %v", err)
	}

	// Re-asignar al mismo lote es un no-op permitido aun con el lote lleno.
	if _, err := svc.Assign(ctx, l.ID, "a1"); err != nil {
		t.Fatalf("reassign to same lot: %v", err)
	}
}

func TestAssign_RejectsCrossOwner(t *testing.T) {
	svc, dir := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Potrero 1"})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}

	dir.add("ajeno", "owner-2")
	_, err = svc.Assign(ctx, l.ID, "ajeno")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cross-owner assign, got %v", err)
	}
}

func TestUnassign_RequiresCurrentLot(t *testing.T) {
	svc, dir := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Potrero 1"})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}

	dir.add("a1", "owner-1")

	// No está en ese lote todavía.
	if _, err := svc.Unassign(ctx, l.ID, "a1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if _, err := svc.Assign(ctx, l.ID, "a1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	a, err := svc.Unassign(ctx, l.ID, "a1")
	if err != nil {
		t.Fatalf("unassign: %v", err)
	}
	if a.LotID != "" {
		t.Fatalf("expected empty lot after unassign, got %q", a.LotID)
	}
}

func TestOccupancyOf_CountsHeads(t *testing.T) {
	svc, dir := newTestService()
	ctx := context.Background()

	l, err := svc.Create(ctx, "owner-1", CreateInput{Name: "Potrero 1", Capacity: 3})
	if err != nil {
		t.Fatalf("create lot: %v", err)
	}

	dir.add("a1", "owner-1")
	dir.add("a2", "owner-1")
	for _, id := range []string{"a1", "a2"} {
		if _, err := svc.Assign(ctx, l.ID, id); err != nil {
			t.Fatalf("assign %s: %v", id, err)
		}
	}

	occ, err := svc.OccupancyOf(ctx, l)
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if occ.HeadCount != 2 || occ.Full {
		t.Fatalf("expected 2 heads not full, got %+v", occ)
	}
}
