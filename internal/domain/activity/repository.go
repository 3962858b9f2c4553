package activity

import "context"

type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petID string, limit int) ([]Entry, error)
}
