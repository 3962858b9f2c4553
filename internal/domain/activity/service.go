package activity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"petdoc-id/internal/platform/apperr"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Record(ctx context.Context, petID string, typ Type, actor Actor, note string) (Entry, error) {
	if strings.TrimSpace(petID) == "" || typ == "" {
		return Entry{}, apperr.Validation("invalid input")
	}
	if actor.Type == "" {
		actor.Type = ActorTypeSystem
	}

	e := Entry{
		ID:         uuid.NewString(),
		PetID:      petID,
		Type:       typ,
		OccurredAt: s.now().UTC(),
		Actor:      actor,
		Note:       strings.TrimSpace(note),
	}
	if err := s.repo.Append(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListByPet devuelve las entradas más recientes primero.
func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]Entry, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, apperr.Validation("invalid input")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return s.repo.ListByPet(ctx, petID, limit)
}
