package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"livestock-management/internal/domain/animals"
	"livestock-management/internal/domain/species"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

const animalColumns = `
	id, owner_user_id,
	name, tag, species, gender, breed, health_status,
	birth_date, lot_id,
	father_id, mother_id,
	paternal_grandfather_id, paternal_grandmother_id,
	maternal_grandfather_id, maternal_grandmother_id,
	great_grandparents,
	notes, created_at, updated_at
`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		a.ID,
		a.OwnerUserID,
		a.Name,
		a.Tag,
		string(a.Species),
		string(a.Gender),
		a.Breed,
		string(a.HealthStatus),
		toNullDate(a.BirthDate),
		a.LotID,
		a.Ancestry.FatherID,
		a.Ancestry.MotherID,
		a.Ancestry.PaternalGrandfatherID,
		a.Ancestry.PaternalGrandmotherID,
		a.Ancestry.MaternalGrandfatherID,
		a.Ancestry.MaternalGrandmotherID,
		a.Ancestry.GreatGrandparents[:],
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			name = $2,
			tag = $3,
			species = $4,
			gender = $5,
			breed = $6,
			health_status = $7,
			birth_date = $8,
			lot_id = $9,
			father_id = $10,
			mother_id = $11,
			paternal_grandfather_id = $12,
			paternal_grandmother_id = $13,
			maternal_grandfather_id = $14,
			maternal_grandmother_id = $15,
			great_grandparents = $16,
			notes = $17,
			updated_at = $18
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.Tag,
		string(a.Species),
		string(a.Gender),
		a.Breed,
		string(a.HealthStatus),
		toNullDate(a.BirthDate),
		a.LotID,
		a.Ancestry.FatherID,
		a.Ancestry.MotherID,
		a.Ancestry.PaternalGrandfatherID,
		a.Ancestry.PaternalGrandmotherID,
		a.Ancestry.MaternalGrandfatherID,
		a.Ancestry.MaternalGrandmotherID,
		a.Ancestry.GreatGrandparents[:],
		a.Notes,
		a.UpdatedAt,
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

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+animalColumns+`
		FROM animals
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var sp, gender, hs string
	var bd sql.NullTime
	var ggp []string

	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.Name,
		&a.Tag,
		&sp,
		&gender,
		&a.Breed,
		&hs,
		&bd,
		&a.LotID,
		&a.Ancestry.FatherID,
		&a.Ancestry.MotherID,
		&a.Ancestry.PaternalGrandfatherID,
		&a.Ancestry.PaternalGrandmotherID,
		&a.Ancestry.MaternalGrandfatherID,
		&a.Ancestry.MaternalGrandmotherID,
		&ggp,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Species = species.Species(sp)
	a.Gender = animals.Gender(gender)
	a.HealthStatus = animals.HealthStatus(hs)

	if bd.Valid {
		t := bd.Time
		// birth_date es DATE; pgx lo mapea a time.Time midnight UTC
		a.BirthDate = &t
	}

	for i := 0; i < len(ggp) && i < len(a.Ancestry.GreatGrandparents); i++ {
		a.Ancestry.GreatGrandparents[i] = ggp[i]
	}

	return a, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
