package echoServer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	e := echo.New()
	handler := Identity()(func(c echo.Context) error {
		uid, _ := c.Get("user_id").(int64)
		require.Equal(t, int64(42), uid)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(HeaderUserID, "42")
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	// missing header
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// non-numeric header
	req = httptest.NewRequest(http.MethodGet, "/items", nil)
	req.Header.Set(HeaderUserID, "abc")
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
