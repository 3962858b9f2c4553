package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petdoc-id/internal/domain/activity"
)

type activityRepo struct {
	mu    sync.RWMutex
	byPet map[string][]activity.Entry
}

func NewActivityRepo() activity.Repository {
	return &activityRepo{
		byPet: make(map[string][]activity.Entry),
	}
}

func (r *activityRepo) Append(ctx context.Context, e activity.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("activity id required")
	}
	r.byPet[e.PetID] = append(r.byPet[e.PetID], e)
	return nil
}

func (r *activityRepo) ListByPet(ctx context.Context, petID string, limit int) ([]activity.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.byPet[petID]
	out := make([]activity.Entry, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}

	// más reciente primero; a igual timestamp gana el último insertado
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
