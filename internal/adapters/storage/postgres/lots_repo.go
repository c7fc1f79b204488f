package postgres

import (
	"context"
	"database/sql"
	"strings"

	"livestock-management/internal/domain/lots"
)

type LotsRepo struct {
	db *sql.DB
}

func NewLotsRepo(db *sql.DB) *LotsRepo {
	return &LotsRepo{db: db}
}

func (r *LotsRepo) Create(ctx context.Context, l lots.Lot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lots (
			id, owner_user_id,
			name, area_hectares, capacity, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		l.ID,
		l.OwnerUserID,
		l.Name,
		l.AreaHectares,
		l.Capacity,
		l.Notes,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *LotsRepo) Update(ctx context.Context, l lots.Lot) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE lots
		SET
			name = $2,
			area_hectares = $3,
			capacity = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`,
		l.ID,
		l.Name,
		l.AreaHectares,
		l.Capacity,
		l.Notes,
		l.UpdatedAt,
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

func (r *LotsRepo) GetByID(ctx context.Context, id string) (lots.Lot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return lots.Lot{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, area_hectares, capacity, notes,
			created_at, updated_at
		FROM lots
		WHERE id = $1
	`, id)

	var l lots.Lot
	if err := row.Scan(
		&l.ID,
		&l.OwnerUserID,
		&l.Name,
		&l.AreaHectares,
		&l.Capacity,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return lots.Lot{}, ErrNotFound
		}
		return lots.Lot{}, err
	}

	return l, nil
}

func (r *LotsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]lots.Lot, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, area_hectares, capacity, notes,
			created_at, updated_at
		FROM lots
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]lots.Lot, 0)
	for rows.Next() {
		var l lots.Lot
		if err := rows.Scan(
			&l.ID,
			&l.OwnerUserID,
			&l.Name,
			&l.AreaHectares,
			&l.Capacity,
			&l.Notes,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}
