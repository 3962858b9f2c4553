package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
)

const petColumns = `
	id, registration_code, sequence_number,
	name, species, breed, coat_color,
	owner1, owner2, phone1, phone2,
	birth_date, sex, size, neutered, pedigree,
	city, region_code,
	microchip, social_handle, notes, email,
	document_color, status,
	photo_url, photo_storage_id,
	created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)
	`,
		p.ID, p.RegistrationCode, p.SequenceNumber,
		p.Name, p.Species, p.Breed, p.CoatColor,
		p.Owner1, p.Owner2, p.Phone1, p.Phone2,
		p.BirthDate, p.Sex, p.Size, p.Neutered, p.Pedigree,
		p.City, p.RegionCode,
		p.Microchip, p.SocialHandle, p.Notes, p.Email,
		string(p.DocumentColor), string(p.Status),
		p.PhotoURL, p.PhotoStorageID,
		p.CreatedAt, p.UpdatedAt,
	)
	return mapErr(err)
}

// Update no toca registration_code, sequence_number ni created_at.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2, species = $3, breed = $4, coat_color = $5,
			owner1 = $6, owner2 = $7, phone1 = $8, phone2 = $9,
			birth_date = $10, sex = $11, size = $12, neutered = $13, pedigree = $14,
			city = $15, region_code = $16,
			microchip = $17, social_handle = $18, notes = $19, email = $20,
			document_color = $21, status = $22,
			photo_url = $23, photo_storage_id = $24,
			updated_at = $25
		WHERE id = $1
	`,
		p.ID,
		p.Name, p.Species, p.Breed, p.CoatColor,
		p.Owner1, p.Owner2, p.Phone1, p.Phone2,
		p.BirthDate, p.Sex, p.Size, p.Neutered, p.Pedigree,
		p.City, p.RegionCode,
		p.Microchip, p.SocialHandle, p.Notes, p.Email,
		string(p.DocumentColor), string(p.Status),
		p.PhotoURL, p.PhotoStorageID,
		p.UpdatedAt,
	)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, apperr.ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) GetByCode(ctx context.Context, code string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE registration_code = $1`, code)
	return scanPet(row)
}

func (r *PetsRepo) Search(ctx context.Context, q pets.SearchQuery) ([]pets.Pet, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v string) {
		args = append(args, "%"+escapeLike(v)+"%")
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if q.Name != "" {
		add("name ILIKE $%d", q.Name)
	}
	if q.Breed != "" {
		add("breed ILIKE $%d", q.Breed)
	}
	if q.Owner != "" {
		add("(owner1 ILIKE $%[1]d OR owner2 ILIKE $%[1]d)", q.Owner)
	}

	query := `SELECT ` + petColumns + ` FROM pets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = pets.SearchLimit
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC, registration_code DESC LIMIT $%d`, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		return mapErr(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var color, status string
	err := s.Scan(
		&p.ID, &p.RegistrationCode, &p.SequenceNumber,
		&p.Name, &p.Species, &p.Breed, &p.CoatColor,
		&p.Owner1, &p.Owner2, &p.Phone1, &p.Phone2,
		&p.BirthDate, &p.Sex, &p.Size, &p.Neutered, &p.Pedigree,
		&p.City, &p.RegionCode,
		&p.Microchip, &p.SocialHandle, &p.Notes, &p.Email,
		&color, &status,
		&p.PhotoURL, &p.PhotoStorageID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, mapErr(err)
	}
	p.DocumentColor = pets.DocumentColor(color)
	p.Status = pets.Status(status)
	return p, nil
}

// escapeLike escapa los comodines de LIKE (el escape por defecto es '\').
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
