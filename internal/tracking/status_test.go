package tracking

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrEmptyFolio, http.StatusBadRequest, "empty_folio"},
		{ErrFolioNotNumeric, http.StatusBadRequest, "folio_not_numeric"},
		{ErrFolioNotFound, http.StatusNotFound, "folio_not_found"},
		{wrap(ErrUpstream, errors.New("dial tcp: refused")), http.StatusBadGateway, "upstream_error"},
		{fmt.Errorf("search: %w", ErrFolioNotFound), http.StatusNotFound, "folio_not_found"},
		{errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatus(tc.err))
			assert.Equal(t, tc.code, ErrorCode(tc.err))
		})
	}
}

func TestMessageForUnknownErrorFallsBackToUpstream(t *testing.T) {
	assert.Equal(t, ErrUpstream.Message, MessageFor(errors.New("boom")))
	assert.Equal(t, ErrEmptyFolio.Message, MessageFor(ErrEmptyFolio))
}
