package pets

import "context"

const SearchLimit = 200

// SearchQuery filtra por "contiene" sin distinguir mayúsculas.
// Owner compara contra tutor1 y tutor2. Vacío => sin filtro.
type SearchQuery struct {
	Name  string
	Owner string
	Breed string
	Limit int
}

// Repository persiste fichas. Devuelve apperr.ErrNotFound y apperr.ErrConflict
// (código de registro duplicado).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	GetByCode(ctx context.Context, code string) (Pet, error)
	// Search devuelve los más recientes primero.
	Search(ctx context.Context, q SearchQuery) ([]Pet, error)
	Delete(ctx context.Context, id string) error
}
