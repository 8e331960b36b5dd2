package respond_test

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/echoServer/respond"
	"shareit/util/apperr"
)

func respondTo(t *testing.T, err error) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respond.Error(c, log, "get booking", err))
	return rec, buf.String()
}

func TestError_KnownKindsLogWarn(t *testing.T) {
	want := map[apperr.Kind]int{
		apperr.NotFound:        http.StatusNotFound,
		apperr.Forbidden:       http.StatusForbidden,
		apperr.InvalidArgument: http.StatusBadRequest,
		apperr.Conflict:        http.StatusConflict,
	}
	for kind, status := range want {
		rec, logged := respondTo(t, apperr.New(kind, "boom"))
		require.Equal(t, status, rec.Code)
		require.Contains(t, rec.Body.String(), "boom")
		require.Contains(t, logged, `"level":"WARN"`)
		require.Contains(t, logged, "boom")
	}
}

func TestError_UnknownIsInternal(t *testing.T) {
	rec, logged := respondTo(t, errors.New("db down"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, logged, `"level":"ERROR"`)
	require.Contains(t, logged, "db down")
	// the raw cause stays in the log, not the response
	require.NotContains(t, rec.Body.String(), "db down")
}
