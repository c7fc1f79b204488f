package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"livestock-management/internal/domain/grants"
)

type GrantsRepo struct {
	db *sql.DB
}

func NewGrantsRepo(db *sql.DB) *GrantsRepo {
	return &GrantsRepo{db: db}
}

func (r *GrantsRepo) Create(ctx context.Context, g grants.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO herd_grants (
			id, owner_user_id, grantee_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		g.ID,
		g.OwnerUserID,
		g.GranteeUserID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	return err
}

func (r *GrantsRepo) Update(ctx context.Context, g grants.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE herd_grants
		SET
			scopes = $2,
			status = $3,
			updated_at = $4,
			revoked_at = $5
		WHERE id = $1
	`,
		g.ID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GrantsRepo) GetByID(ctx context.Context, id string) (grants.Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return grants.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, grantee_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM herd_grants
		WHERE id = $1
	`, id)

	g, err := scanGrant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return grants.Grant{}, ErrNotFound
		}
		return grants.Grant{}, err
	}
	return g, nil
}

func (r *GrantsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]grants.Grant, error) {
	return r.list(ctx, "owner_user_id", ownerUserID)
}

func (r *GrantsRepo) ListByGrantee(ctx context.Context, granteeUserID string) ([]grants.Grant, error) {
	return r.list(ctx, "grantee_user_id", granteeUserID)
}

func (r *GrantsRepo) list(ctx context.Context, column, value string) ([]grants.Grant, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id, grantee_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM herd_grants
		WHERE `+column+` = $1
		ORDER BY updated_at DESC
	`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]grants.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	return out, rows.Err()
}

func (r *GrantsRepo) GetActiveGrant(ctx context.Context, ownerUserID, granteeUserID string) (grants.Grant, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	granteeUserID = strings.TrimSpace(granteeUserID)
	if ownerUserID == "" || granteeUserID == "" {
		return grants.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id, grantee_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM herd_grants
		WHERE owner_user_id = $1
		  AND grantee_user_id = $2
		  AND status = 'active'
		ORDER BY updated_at DESC
		LIMIT 1
	`, ownerUserID, granteeUserID)

	g, err := scanGrant(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return grants.Grant{}, ErrNotFound
		}
		return grants.Grant{}, err
	}
	return g, nil
}

func scanGrant(row rowScanner) (grants.Grant, error) {
	var g grants.Grant
	var status string
	var scopes []string
	var revokedAt sql.NullTime

	if err := row.Scan(
		&g.ID,
		&g.OwnerUserID,
		&g.GranteeUserID,
		&scopes,
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
		&revokedAt,
	); err != nil {
		return grants.Grant{}, err
	}

	g.Status = grants.Status(status)
	g.Scopes = textArrayToScopes(scopes)
	if revokedAt.Valid {
		t := revokedAt.Time
		g.RevokedAt = &t
	}

	return g, nil
}

// helpers
func scopesToTextArray(in []grants.Scope) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func textArrayToScopes(in []string) []grants.Scope {
	if len(in) == 0 {
		return []grants.Scope{}
	}
	out := make([]grants.Scope, 0, len(in))
	for _, s := range in {
		out = append(out, grants.Scope(s))
	}
	return out
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
