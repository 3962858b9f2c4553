package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
)

type petRepo struct {
	mu     sync.RWMutex
	byID   map[string]pets.Pet
	byCode map[string]string // registration code -> id
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:   make(map[string]pets.Pet),
		byCode: make(map[string]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return apperr.ErrConflict
	}
	if _, exists := r.byCode[p.RegistrationCode]; exists {
		return apperr.ErrConflict
	}
	r.byID[p.ID] = p
	r.byCode[p.RegistrationCode] = p.ID
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[p.ID]
	if !exists {
		return apperr.ErrNotFound
	}
	if cur.RegistrationCode != p.RegistrationCode {
		if _, taken := r.byCode[p.RegistrationCode]; taken {
			return apperr.ErrConflict
		}
		delete(r.byCode, cur.RegistrationCode)
		r.byCode[p.RegistrationCode] = p.ID
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) GetByCode(ctx context.Context, code string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return pets.Pet{}, apperr.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *petRepo) Search(ctx context.Context, q pets.SearchQuery) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(q.Name)
	owner := strings.ToLower(q.Owner)
	breed := strings.ToLower(q.Breed)

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if breed != "" && !strings.Contains(strings.ToLower(p.Breed), breed) {
			continue
		}
		if owner != "" &&
			!strings.Contains(strings.ToLower(p.Owner1), owner) &&
			!strings.Contains(strings.ToLower(p.Owner2), owner) {
			continue
		}
		out = append(out, p)
	}

	// más reciente primero; a igual created_at desempata el código
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RegistrationCode > out[j].RegistrationCode
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return apperr.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.byCode, p.RegistrationCode)
	return nil
}
