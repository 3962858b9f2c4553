package registration

import (
	"context"
	"fmt"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/metrics"
)

// CounterStore incrementa atómicamente el contador de la región (creándolo
// en 0 si no existe) y devuelve el valor ya incrementado.
type CounterStore interface {
	Increment(ctx context.Context, region string) (int64, error)
}

type Service struct {
	store   CounterStore
	backend string
}

// NewService recibe el nombre del backend solo para métricas.
func NewService(store CounterStore, backend string) *Service {
	return &Service{store: store, backend: backend}
}

// NextCode reserva el próximo número de la región y devuelve secuencia + código.
func (s *Service) NextCode(ctx context.Context, region string) (int64, string, error) {
	region = NormalizeRegion(region)
	if region == "" {
		return 0, "", apperr.Validation("region code is required")
	}

	seq, err := s.store.Increment(ctx, region)
	if err != nil {
		return 0, "", apperr.Wrap(apperr.KindInternal, "counter increment failed", fmt.Errorf("region %s: %w", region, err))
	}
	metrics.CodesIssued.WithLabelValues(s.backend).Inc()
	return seq, FormatCode(region, seq), nil
}
