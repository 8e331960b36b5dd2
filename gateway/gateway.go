// Package gateway validates incoming requests and forwards them to the
// shareit server unchanged: method, path, query, caller header and body.
package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer"
)

type Gateway struct {
	ServerURL string
	Client    *http.Client
	V         *validator.Validate
	Log       *slog.Logger
}

// forward relays the request and streams the server response back.
func (g *Gateway) forward(c echo.Context, body []byte) error {
	in := c.Request()

	url := g.ServerURL + in.URL.Path
	if in.URL.RawQuery != "" {
		url += "?" + in.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(in.Context(), in.Method, url, bytes.NewReader(body))
	if err != nil {
		g.Log.Error("gateway build request", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	if uid := in.Header.Get(echoServer.HeaderUserID); uid != "" {
		req.Header.Set(echoServer.HeaderUserID, uid)
	}
	if len(body) > 0 {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		g.Log.Error("gateway forward", "err", err, "url", url)
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "server unreachable"})
	}
	defer resp.Body.Close()

	ct := resp.Header.Get(echo.HeaderContentType)
	if ct == "" {
		ct = echo.MIMEApplicationJSON
	}
	return c.Stream(resp.StatusCode, ct, resp.Body)
}

// passthrough forwards without inspecting the body.
func (g *Gateway) passthrough(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	return g.forward(c, body)
}

// validated binds the body into dst, runs struct validation plus the
// optional extra check, then forwards the original bytes.
func (g *Gateway) validated(dst any, extra func() error) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
		}
		if err := json.Unmarshal(body, dst); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
		}
		if err := g.V.Struct(dst); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
		}
		if extra != nil {
			if err := extra(); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
			}
		}
		return g.forward(c, body)
	}
}

func Register(e *echo.Echo, g *Gateway) {
	users := e.Group("/users")
	users.POST("", func(c echo.Context) error {
		var req CreateUserReq
		return g.validated(&req, nil)(c)
	})
	users.PATCH("/:userId", func(c echo.Context) error {
		var req UpdateUserReq
		return g.validated(&req, nil)(c)
	})
	users.GET("/:userId", g.passthrough)
	users.DELETE("/:userId", g.passthrough)
	users.GET("", g.passthrough)

	items := e.Group("/items", echoServer.Identity())
	items.POST("", func(c echo.Context) error {
		var req CreateItemReq
		return g.validated(&req, nil)(c)
	})
	items.PATCH("/:itemId", func(c echo.Context) error {
		var req UpdateItemReq
		return g.validated(&req, nil)(c)
	})
	items.GET("/search", g.passthrough)
	items.GET("/:itemId", g.passthrough)
	items.GET("", g.passthrough)
	items.POST("/:itemId/comment", func(c echo.Context) error {
		var req AddCommentReq
		return g.validated(&req, nil)(c)
	})

	bookings := e.Group("/bookings", echoServer.Identity())
	bookings.POST("", func(c echo.Context) error {
		var req CreateBookingReq
		return g.validated(&req, func() error { return checkBookingWindow(req) })(c)
	})
	bookings.PATCH("/:bookingId", func(c echo.Context) error {
		if _, err := strconv.ParseBool(c.QueryParam("approved")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
		}
		return g.passthrough(c)
	})
	bookings.GET("/owner", g.passthrough)
	bookings.GET("/:bookingId", g.passthrough)
	bookings.GET("", g.passthrough)

	requests := e.Group("/requests", echoServer.Identity())
	requests.POST("", func(c echo.Context) error {
		var req CreateRequestReq
		return g.validated(&req, nil)(c)
	})
	requests.GET("/all", g.passthrough)
	requests.GET("/:requestId", g.passthrough)
	requests.GET("", g.passthrough)
}

// checkBookingWindow mirrors the edge rules: start must not be in the
// past, end must be in the future and after start.
func checkBookingWindow(req CreateBookingReq) error {
	now := time.Now()
	if req.Start.Before(now.Add(-time.Minute)) {
		return errStartPast
	}
	if !req.End.After(now) {
		return errEndPast
	}
	if !req.End.After(req.Start) {
		return errEndBeforeStart
	}
	return nil
}

var (
	errStartPast      = errors.New("start must not be in the past")
	errEndPast        = errors.New("end must be in the future")
	errEndBeforeStart = errors.New("end must be after start")
)
