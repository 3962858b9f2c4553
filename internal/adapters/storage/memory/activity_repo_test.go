package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"petdoc-id/internal/domain/activity"
)

func entry(id, petID string, at time.Time) activity.Entry {
	return activity.Entry{ID: id, PetID: petID, Type: activity.TypeUpdated, OccurredAt: at}
}

func TestActivityRepo_NewestFirst(t *testing.T) {
	repo := NewActivityRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, entry("a", "p1", t0)))
	require.NoError(t, repo.Append(ctx, entry("b", "p1", t0.Add(time.Minute))))
	require.NoError(t, repo.Append(ctx, entry("c", "p1", t0.Add(time.Minute))))
	require.NoError(t, repo.Append(ctx, entry("d", "p2", t0)))

	got, err := repo.ListByPet(ctx, "p1", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, []string{"c", "b", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
}
