package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var req commentRequest
	err := decodeJSON(strings.NewReader(`{"name":"Ann","comment":"hi"}`), &req)
	require.NoError(t, err)
	require.Equal(t, "Ann", req.Name)
	require.Equal(t, "hi", req.Comment)

	err = decodeJSON(strings.NewReader(`{"name":`), &req)
	require.Error(t, err)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "invalid comment", map[string]string{"name": "required"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error":"invalid comment","fields":{"name":"required"}}`, rec.Body.String())
}
