package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"livestock-management/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.AnimalRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animal_records (
			id, animal_id, type,
			occurred_at, recorded_at,
			title, notes, weight_kg,
			actor_type, actor_id,
			source, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		rec.ID,
		rec.AnimalID,
		string(rec.Type),
		rec.OccurredAt,
		rec.RecordedAt,
		rec.Title,
		rec.Notes,
		rec.WeightKg,
		string(rec.Actor.Type),
		rec.Actor.ID,
		string(rec.Source),
		string(rec.Status),
	)
	return err
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.AnimalRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.AnimalRecord{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, animal_id, type,
			occurred_at, recorded_at,
			title, notes, weight_kg,
			actor_type, actor_id,
			source, status
		FROM animal_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return records.AnimalRecord{}, ErrNotFound
		}
		return records.AnimalRecord{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) ListByAnimal(ctx context.Context, animalID string, filter records.ListFilter) ([]records.AnimalRecord, error) {
	animalID = strings.TrimSpace(animalID)
	if animalID == "" {
		return nil, nil
	}

	q := `
		SELECT
			id, animal_id, type,
			occurred_at, recorded_at,
			title, notes, weight_kg,
			actor_type, actor_id,
			source, status
		FROM animal_records
		WHERE animal_id = $1
	`
	args := []any{animalID}

	if len(filter.Types) > 0 {
		types := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			types = append(types, string(t))
		}
		args = append(args, types)
		q += fmt.Sprintf(" AND type = ANY($%d)", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		q += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		q += fmt.Sprintf(" AND occurred_at <= $%d", len(args))
	}

	q += " ORDER BY occurred_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	q += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.AnimalRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func (r *RecordsRepo) Void(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animal_records
		SET status = 'voided'
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row rowScanner) (records.AnimalRecord, error) {
	var rec records.AnimalRecord
	var typ, actorType, source, status string

	if err := row.Scan(
		&rec.ID,
		&rec.AnimalID,
		&typ,
		&rec.OccurredAt,
		&rec.RecordedAt,
		&rec.Title,
		&rec.Notes,
		&rec.WeightKg,
		&actorType,
		&rec.Actor.ID,
		&source,
		&status,
	); err != nil {
		return records.AnimalRecord{}, err
	}

	rec.Type = records.RecordType(typ)
	rec.Actor.Type = records.ActorType(actorType)
	rec.Source = records.Source(source)
	rec.Status = records.RecordStatus(status)

	return rec, nil
}
