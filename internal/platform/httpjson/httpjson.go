// Package httpjson junta los helpers JSON que antes estaban duplicados en cada
// handler. Ya hay suficientes módulos como para extraerlos.
package httpjson

import (
	"encoding/json"
	"errors"
	"net/http"

	"petdoc-id/internal/platform/apperr"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError mapea el Kind del error a un status HTTP y escribe {"error": "..."}.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), errorResponse{Error: apperr.Message(err)})
}

func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	case apperr.KindStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON decodifica el body limitado a maxBytes. Campos desconocidos son error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return apperr.Validation("request body too large")
		}
		return apperr.Validation("invalid json")
	}
	return nil
}
