package domain

import (
	"errors"
	"fmt"
)

// Kind clasifica los errores de negocio; el router los traduce a mensajes.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindState       Kind = "state"
	KindCapacity    Kind = "capacity"
	KindConflict    Kind = "conflict"
	KindConsistency Kind = "consistency"
	KindInternal    Kind = "internal"
)

type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is compara por Kind, así errors.Is(err, ErrCapacity) funciona con cualquier mensaje.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

var (
	ErrValidation  = &Error{Kind: KindValidation, Msg: "validation error"}
	ErrNotFound    = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrState       = &Error{Kind: KindState, Msg: "invalid state"}
	ErrCapacity    = &Error{Kind: KindCapacity, Msg: "no eligible roster slot"}
	ErrConflict    = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrConsistency = &Error{Kind: KindConsistency, Msg: "consistency violation"}
)

func newErr(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error  { return newErr(KindValidation, format, args...) }
func NotFound(format string, args ...any) error    { return newErr(KindNotFound, format, args...) }
func State(format string, args ...any) error       { return newErr(KindState, format, args...) }
func Capacity(format string, args ...any) error    { return newErr(KindCapacity, format, args...) }
func Conflict(format string, args ...any) error    { return newErr(KindConflict, format, args...) }
func Consistency(format string, args ...any) error { return newErr(KindConsistency, format, args...) }

// Wrap conserva la causa original (p.ej. error de pgx) bajo un Kind.
func Wrap(k Kind, msg string, cause error) error {
	return &Error{Kind: k, Msg: msg, Cause: cause}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// UserMessage es el texto que se muestra al usuario; los internos no filtran detalles.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "unexpected error, try again later"
}
