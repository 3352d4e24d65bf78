package tracking

import "errors"

// Code classifies a failed search.
type Code string

const (
	CodeEmptyFolio      Code = "empty_folio"
	CodeFolioNotNumeric Code = "folio_not_numeric"
	CodeFolioNotFound   Code = "folio_not_found"
	CodeUpstream        Code = "upstream_error"
)

// Error is a search failure carrying the message shown to the citizen.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Err.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Code so wrapped instances compare equal to the package values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

var (
	ErrEmptyFolio = &Error{
		Code:    CodeEmptyFolio,
		Message: "Ingresa un folio para poder buscar tu denuncia.",
	}
	ErrFolioNotNumeric = &Error{
		Code:    CodeFolioNotNumeric,
		Message: "El folio debe ser numérico, por ejemplo: 10001.",
	}
	ErrFolioNotFound = &Error{
		Code:    CodeFolioNotFound,
		Message: "No se encontró ninguna denuncia con ese folio. Verifica que esté bien escrito o que corresponda al sistema.",
	}
	ErrUpstream = &Error{
		Code:    CodeUpstream,
		Message: "Ocurrió un problema al consultar la API de denuncias. Intenta de nuevo más tarde.",
	}
)

// wrap returns a copy of base that keeps cause for logging.
func wrap(base *Error, cause error) *Error {
	return &Error{Code: base.Code, Message: base.Message, Err: cause}
}

// MessageFor returns the citizen-facing message for err. Errors that are not
// search errors get the upstream message.
func MessageFor(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Message
	}
	return ErrUpstream.Message
}
