package activity

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"petdoc-id/internal/platform/apperr"
	"petdoc-id/internal/platform/httpjson"
)

// PetExists permite responder 404 para fichas inexistentes sin importar pets.
type PetExists func(ctx context.Context, petID string) error

type entryResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Type       Type      `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	ActorType  ActorType `json:"actor_type"`
	ActorID    string    `json:"actor_id,omitempty"`
	Note       string    `json:"note,omitempty"`
}

// ListHandler devuelve el historial de la ficha.
// @Summary Historial de una ficha
// @Tags activity
// @Produce json
// @Param id path string true "Pet ID"
// @Param limit query int false "máximo de entradas"
// @Success 200 {array} entryResponse
// @Router /api/pets/{id}/activity [get]
func ListHandler(svc *Service, exists PetExists) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "id")
		if exists != nil {
			if err := exists(r.Context(), petID); err != nil {
				httpjson.WriteError(w, err)
				return
			}
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				httpjson.WriteError(w, apperr.Validation("limit must be a positive integer"))
				return
			}
			limit = n
		}

		items, err := svc.ListByPet(r.Context(), petID, limit)
		if err != nil {
			httpjson.WriteError(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:         e.ID,
				PetID:      e.PetID,
				Type:       e.Type,
				OccurredAt: e.OccurredAt,
				ActorType:  e.Actor.Type,
				ActorID:    e.Actor.ID,
				Note:       e.Note,
			})
		}
		httpjson.WriteJSON(w, http.StatusOK, out)
	}
}
