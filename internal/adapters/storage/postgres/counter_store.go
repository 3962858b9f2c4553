package postgres

import (
	"context"
	"database/sql"
)

type CounterStore struct {
	db *sql.DB
}

func NewCounterStore(db *sql.DB) *CounterStore {
	return &CounterStore{db: db}
}

// Increment hace el find-and-increment en una sola sentencia: el upsert crea
// la fila en 1 o suma 1 bajo el lock de fila.
func (s *CounterStore) Increment(ctx context.Context, region string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO counters (region_code, sequence)
		VALUES ($1, 1)
		ON CONFLICT (region_code)
		DO UPDATE SET sequence = counters.sequence + 1
		RETURNING sequence
	`, region).Scan(&seq)
	if err != nil {
		return 0, mapErr(err)
	}
	return seq, nil
}
