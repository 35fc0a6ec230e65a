package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrAlreadyExists, http.StatusConflict},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrExternal, http.StatusBadGateway},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
		// Wrap edilmiş error da doğru eşlenir.
		{fmt.Errorf("%w: product not found", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: inner", ErrConflict)), http.StatusConflict},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, mapErrorToStatus(tc.err), "error: %v", tc.err)
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]string{"id": "42"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Error)
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	Error(w, fmt.Errorf("%w: blog not found", ErrNotFound))

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "blog not found")
}

func TestErrorWithMessage(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorWithMessage(w, http.StatusTooManyRequests, "too many login attempts")

	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "too many login attempts", resp.Error)
}
