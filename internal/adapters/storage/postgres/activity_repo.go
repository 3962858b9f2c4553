package postgres

import (
	"context"
	"database/sql"

	"petdoc-id/internal/domain/activity"
)

type ActivityRepo struct {
	db *sql.DB
}

func NewActivityRepo(db *sql.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(ctx context.Context, e activity.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_activity (id, pet_id, type, occurred_at, actor_type, actor_id, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		e.ID,
		e.PetID,
		string(e.Type),
		e.OccurredAt,
		string(e.Actor.Type),
		e.Actor.ID,
		e.Note,
	)
	return mapErr(err)
}

func (r *ActivityRepo) ListByPet(ctx context.Context, petID string, limit int) ([]activity.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, type, occurred_at, actor_type, actor_id, note
		FROM pet_activity
		WHERE pet_id = $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, petID, limit)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	out := make([]activity.Entry, 0)
	for rows.Next() {
		var e activity.Entry
		var typ, actorType string
		if err := rows.Scan(&e.ID, &e.PetID, &typ, &e.OccurredAt, &actorType, &e.Actor.ID, &e.Note); err != nil {
			return nil, err
		}
		e.Type = activity.Type(typ)
		e.Actor.Type = activity.ActorType(actorType)
		out = append(out, e)
	}
	return out, rows.Err()
}
