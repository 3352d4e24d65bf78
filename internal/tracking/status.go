package tracking

import (
	"errors"
	"net/http"
)

// HTTPStatus maps a search failure onto a response status. Pages and the
// JSON API share it.
func HTTPStatus(err error) int {
	var te *Error
	if !errors.As(err, &te) {
		return http.StatusInternalServerError
	}
	switch te.Code {
	case CodeEmptyFolio, CodeFolioNotNumeric:
		return http.StatusBadRequest
	case CodeFolioNotFound:
		return http.StatusNotFound
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the machine-readable code of err.
func ErrorCode(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return string(te.Code)
	}
	return "internal_error"
}
