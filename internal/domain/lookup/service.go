// Package lookup atiende la consulta pública por código de registro.
package lookup

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"petdoc-id/internal/domain/pets"
	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/metrics"
)

const DefaultTTL = 5 * time.Minute

// PetFinder es lo único que necesitamos de pets.Service.
type PetFinder interface {
	GetByCode(ctx context.Context, code string) (pets.Pet, error)
}

// Result es la vista pública reducida de una ficha.
type Result struct {
	RegistrationCode string `json:"registration_code"`
	PetName          string `json:"pet_name"`
	PhotoURL         string `json:"photo_url"`
	OwnerName        string `json:"owner_name"`
	OwnerPhone       string `json:"owner_phone"`
}

type Service struct {
	finder PetFinder
	cache  *gocache.Cache
}

func NewService(finder PetFinder, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		finder: finder,
		cache:  gocache.New(ttl, 2*ttl),
	}
}

// NormalizeCode recorta y pasa a mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (s *Service) Lookup(ctx context.Context, code string) (Result, error) {
	code = NormalizeCode(code)
	if code == "" {
		return Result{}, apperr.Validation("registration code is required")
	}

	if v, ok := s.cache.Get(code); ok {
		if res, ok := v.(Result); ok {
			metrics.Lookups.WithLabelValues("hit").Inc()
			return res, nil
		}
	}

	p, err := s.finder.GetByCode(ctx, code)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			metrics.Lookups.WithLabelValues("not_found").Inc()
			return Result{}, apperr.NotFound("registration not found")
		}
		return Result{}, err
	}

	res := Result{
		RegistrationCode: p.RegistrationCode,
		PetName:          p.Name,
		PhotoURL:         p.PhotoURL,
		OwnerName:        p.Owner1,
		OwnerPhone:       p.Phone1,
	}
	s.cache.SetDefault(code, res)
	metrics.Lookups.WithLabelValues("miss").Inc()
	return res, nil
}

// Invalidate descarta la entrada cacheada; se engancha a pets.Service.OnChange.
func (s *Service) Invalidate(code string) {
	s.cache.Delete(NormalizeCode(code))
}
