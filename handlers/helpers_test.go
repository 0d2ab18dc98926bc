package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reggysosa/tournament-gateway/repositories"
	"github.com/reggysosa/tournament-gateway/services"
)

func TestResult_Body(t *testing.T) {
	assert.Equal(t, jsonResponse{"ok": true}, Success(http.StatusOK, okResponse("", nil)).Body())
	assert.Equal(t, jsonResponse{"ok": false, "not_found": true}, Failure(KindNotFound, http.StatusNotFound).Body())
	assert.Equal(t,
		jsonResponse{"ok": false, "error": true, "partial_failure": true},
		Failure(KindError, http.StatusInternalServerError, flagPartialFailure).Body())
	assert.False(t, Failure(KindError, 500).OK())
}

func TestMapServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := httptest.NewRequest(http.MethodGet, "/api/teams", nil)

	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{repositories.ErrStoreUnavailable, http.StatusInternalServerError, "missing_env"},
		{services.ErrTeamNameRequired, http.StatusBadRequest, "bad_request"},
		{services.ErrTournamentNotFound, http.StatusNotFound, "not_found"},
		{services.ErrPartialFailure, http.StatusInternalServerError, "error"},
		{errors.New("anything else"), http.StatusInternalServerError, "error"},
	}
	for _, tt := range tests {
		res := mapServiceError(logger, r, tt.err)
		assert.Equal(t, tt.status, res.Status(), tt.err.Error())
		assert.Equal(t, true, res.Body().(jsonResponse)[tt.kind], tt.err.Error())
	}
}

func TestReadJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
	}

	t.Run("unknown fields are ignored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@x.com","extra":1}`))
		var p payload
		require.NoError(t, readJSON(httptest.NewRecorder(), r, &p))
		assert.Equal(t, "a@x.com", p.Email)
	})

	t.Run("trailing value", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{} {}`))
		var p payload
		assert.Error(t, readJSON(httptest.NewRecorder(), r, &p))
	})

	t.Run("too large", func(t *testing.T) {
		big := `{"email":"` + strings.Repeat("a", maxBodyBytes) + `"}`
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
		var p payload
		err := readJSON(httptest.NewRecorder(), r, &p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "larger than")
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.EqualError(t, readJSON(httptest.NewRecorder(), r, &p), "body must not be empty")
	})
}
