package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondHelpers(t *testing.T) {
	cases := []struct {
		respond func(http.ResponseWriter)
		status  int
		message string
	}{
		{RespondBadRequest, http.StatusBadRequest, "bad request"},
		{RespondNotFound, http.StatusNotFound, "resource not found"},
		{RespondMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
		{func(w http.ResponseWriter) { RespondError(w, http.StatusUnprocessableEntity) }, http.StatusUnprocessableEntity, "unprocessable"},
		{RespondInternalError, http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		tc.respond(rec)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, ErrorResponse{Success: false, Error: tc.status, Message: tc.message}, got)
	}
}

func TestMessageFallsBackToStatusText(t *testing.T) {
	assert.Equal(t, "conflict", Message(http.StatusConflict))
}
