package grants

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
	byID map[string]Grant
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Grant{}}
}

func (r *testRepo) Create(ctx context.Context, g Grant) error {
	if g.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[g.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) Update(ctx context.Context, g Grant) error {
	if g.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[g.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Grant, error) {
	g, ok := r.byID[id]
	if !ok {
		return Grant{}, errRepoNotFound
	}
	return g, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.OwnerUserID == ownerUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]Grant, error) {
	out := make([]Grant, 0)
	for _, g := range r.byID {
		if g.GranteeUserID == granteeUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *testRepo) GetActiveGrant(ctx context.Context, ownerUserID, granteeUserID string) (Grant, error) {
	var winner Grant
	has := false

	for _, g := range r.byID {
		if g.OwnerUserID != ownerUserID {
			continue
		}
		if g.GranteeUserID != granteeUserID {
			continue
		}
		if g.Status != StatusActive {
			continue
		}

		if !has || g.UpdatedAt.After(winner.UpdatedAt) {
			winner = g
			has = true
		}
	}

	if !has {
		return Grant{}, errRepoNotFound
	}
	return winner, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Invite_DefaultScopes_WhenEmpty(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	g, err := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
		Scopes:        nil,
	})
	if err != nil {
		t.Fatalf("Invite returned error: %v", err)
	}
	if g.Status != StatusInvited {
		t.Fatalf("expected status invited, got %s", g.Status)
	}
	// default: animals:read + records:read
	if !HasScope(g, ScopeAnimalsRead) || !HasScope(g, ScopeRecordsRead) {
		t.Fatalf("expected default scopes, got %#v", g.Scopes)
	}
}

func TestService_Invite_StrictScopes_RejectsUnknown(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
		Scopes:        []Scope{ScopeAnimalsRead, Scope("bad:scope")},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Invite_Dedup_UpdatesSameGrant(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(5 * time.Minute)

	svc.now = func() time.Time { return now1 }
	g1, err := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
		Scopes:        []Scope{ScopeAnimalsRead},
	})
	if err != nil {
		t.Fatalf("Invite #1 error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	g2, err := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
		Scopes:        []Scope{ScopeAnimalsRead, ScopeBreedingAnalyze},
	})
	if err != nil {
		t.Fatalf("Invite #2 error: %v", err)
	}

	if g2.ID != g1.ID {
		t.Fatalf("expected same grant ID (dedup), got %s vs %s", g1.ID, g2.ID)
	}
	if !HasScope(g2, ScopeBreedingAnalyze) {
		t.Fatalf("expected scopes updated, got %#v", g2.Scopes)
	}
}

func TestService_Accept_SetsActive_AndIdempotent(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, err := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
	})
	if err != nil {
		t.Fatalf("Invite error: %v", err)
	}

	accepted, err := svc.Accept(context.Background(), g.ID, "delegate-1")
	if err != nil {
		t.Fatalf("Accept error: %v", err)
	}
	if accepted.Status != StatusActive {
		t.Fatalf("expected active, got %s", accepted.Status)
	}

	accepted2, err := svc.Accept(context.Background(), g.ID, "delegate-1")
	if err != nil {
		t.Fatalf("Accept #2 error: %v", err)
	}
	if accepted2.Status != StatusActive {
		t.Fatalf("expected active after idempotent accept, got %s", accepted2.Status)
	}
}

func TestService_Accept_WrongGrantee_Forbidden(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, _ := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
	})

	if _, err := svc.Accept(context.Background(), g.ID, "intruso"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Revoke_Idempotent_AndBlocksAccess(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	g, _ := svc.Invite(context.Background(), InviteInput{
		OwnerUserID:   "owner-1",
		GranteeUserID: "delegate-1",
		Scopes:        []Scope{ScopeAnimalsRead},
	})
	_, _ = svc.Accept(context.Background(), g.ID, "delegate-1")

	if !svc.Allowed(context.Background(), "owner-1", "delegate-1", ScopeAnimalsRead) {
		t.Fatalf("expected access with active grant")
	}

	revoked, err := svc.Revoke(context.Background(), g.ID, "owner-1")
	if err != nil {
		t.Fatalf("Revoke error: %v", err)
	}
	if revoked.Status != StatusRevoked || revoked.RevokedAt == nil {
		t.Fatalf("expected revoked with timestamp, got %+v", revoked)
	}

	if svc.Allowed(context.Background(), "owner-1", "delegate-1", ScopeAnimalsRead) {
		t.Fatalf("expected no access after revoke")
	}

	// Idempotente
	if _, err := svc.Revoke(context.Background(), g.ID, "owner-1"); err != nil {
		t.Fatalf("Revoke #2 error: %v", err)
	}
}

func TestService_Allowed_OwnerBypass(t *testing.T) {
	svc := NewService(newTestRepo())
	if !svc.Allowed(context.Background(), "owner-1", "owner-1", ScopeAnimalsEdit) {
		t.Fatalf("owner must bypass grants")
	}
	if svc.Allowed(context.Background(), "owner-1", "otro", ScopeAnimalsRead) {
		t.Fatalf("stranger must not have access")
	}
}
