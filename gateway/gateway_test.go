package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"shareit/app/echoServer"
)

func testGateway(serverURL string) *Gateway {
	return &Gateway{
		ServerURL: serverURL,
		Client:    &http.Client{Timeout: time.Second},
		V:         validator.New(),
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestItemPatch_RejectsMalformedBody(t *testing.T) {
	e := echo.New()
	Register(e, testGateway("http://127.0.0.1:0"))

	req := httptest.NewRequest(http.MethodPatch, "/items/1", strings.NewReader(`{"name": 7}`))
	req.Header.Set(echoServer.HeaderUserID, "1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid JSON")
}

func TestItemPatch_ForwardsValidBody(t *testing.T) {
	var gotPath, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotPath, gotBody = r.URL.Path, string(b)
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer ts.Close()

	e := echo.New()
	Register(e, testGateway(ts.URL))

	body := `{"name":"drill","available":false}`
	req := httptest.NewRequest(http.MethodPatch, "/items/1", strings.NewReader(body))
	req.Header.Set(echoServer.HeaderUserID, "1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/items/1", gotPath)
	require.Equal(t, body, gotBody)
}

func TestCheckBookingWindow(t *testing.T) {
	now := time.Now()

	ok := CreateBookingReq{ItemID: 1, Start: now.Add(time.Hour), End: now.Add(2 * time.Hour)}
	require.NoError(t, checkBookingWindow(ok))

	past := CreateBookingReq{ItemID: 1, Start: now.Add(-time.Hour), End: now.Add(time.Hour)}
	require.ErrorIs(t, checkBookingWindow(past), errStartPast)

	ended := CreateBookingReq{ItemID: 1, Start: now.Add(time.Hour), End: now.Add(-time.Hour)}
	require.Error(t, checkBookingWindow(ended))

	inverted := CreateBookingReq{ItemID: 1, Start: now.Add(2 * time.Hour), End: now.Add(time.Hour)}
	require.ErrorIs(t, checkBookingWindow(inverted), errEndBeforeStart)
}
