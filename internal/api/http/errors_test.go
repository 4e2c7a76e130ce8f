package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"impactecho-backend/internal/domain"
)

func TestWriteErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrConflict, http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest("GET", "/", nil), tc.err)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
	}
}

func TestWriteErrorHidesPersistenceDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest("GET", "/", nil), fmt.Errorf("%w: open /var/data/x.json: permission denied", domain.ErrPersistence))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/var/data")
	assert.Contains(t, rec.Body.String(), string(domain.KindPersistence))
}

func TestDecodeJSONContentType(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	var v struct{}
	assert.ErrorIs(t, decodeJSON(req, &v), domain.ErrValidation)
}
