// Package apperr define la taxonomía de errores de la aplicación.
//
// Los stores devuelven sentinels (ErrNotFound, ErrConflict); los servicios los
// traducen a un *Error con Kind, que es lo único que la capa HTTP mira.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindRateLimited  Kind = "rate_limited"
	KindStorage      Kind = "storage"
	KindRender       Kind = "render"
	KindInternal     Kind = "internal"
)

// Sentinels para hechos de infraestructura.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error { return New(KindValidation, msg) }

func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// KindOf devuelve el Kind del primer *Error en la cadena.
// Sin *Error, los sentinels se mapean y todo lo demás es interno.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	}
	return KindInternal
}

// Message es el texto corto apto para el usuario.
// Los errores internos nunca exponen detalles.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	switch KindOf(err) {
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	}
	return "internal error"
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
