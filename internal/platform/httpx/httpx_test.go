package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("mall: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: mock required", ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: tenants", ErrBadGateway), http.StatusBadGateway},
		{ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		RespondError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

		var body ProblemDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Status)
	}
}

func TestBadGatewayHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, fmt.Errorf("%w: password authentication failed for user x", ErrBadGateway))
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDecodeJSON(t *testing.T) {
	var target struct {
		Mock *bool `json:"mock"`
	}
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"mock":true}`))
	require.NoError(t, DecodeJSON(req, &target))
	require.NotNil(t, target.Mock)
	assert.True(t, *target.Mock)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"mock":true,"extra":1}`))
	assert.ErrorIs(t, DecodeJSON(req, &target), ErrValidation)

	req = httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"mock":true}{}`))
	assert.ErrorIs(t, DecodeJSON(req, &target), ErrValidation)
}
