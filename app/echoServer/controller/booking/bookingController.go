package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/respond"
	"shareit/model"
	bookingsvc "shareit/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return respond.Error(c, h.Log, "booking create", err)
	}
	return c.JSON(http.StatusCreated, toResp(b))
}

// PATCH /bookings/:bookingId?approved=true|false
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "approved must be true or false"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.UpdateStatus(c.Request().Context(), uid, id, approved)
	if err != nil {
		return respond.Error(c, h.Log, "booking decide", err)
	}
	return c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings/:bookingId
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c, "bookingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	b, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return respond.Error(c, h.Log, "booking get", err)
	}
	return c.JSON(http.StatusOK, toResp(b))
}

// GET /bookings?state=
func (h *Controller) ListForBooker(c echo.Context) error {
	state, ok := model.ParseBookingState(c.QueryParam("state"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown state: " + c.QueryParam("state")})
	}
	uid, _ := c.Get("user_id").(int64)

	bs, err := h.Svc.ListForBooker(c.Request().Context(), uid, state)
	if err != nil {
		return respond.Error(c, h.Log, "booking list", err)
	}
	return c.JSON(http.StatusOK, toResps(bs))
}

// GET /bookings/owner?state=
func (h *Controller) ListForOwner(c echo.Context) error {
	state, ok := model.ParseBookingState(c.QueryParam("state"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown state: " + c.QueryParam("state")})
	}
	uid, _ := c.Get("user_id").(int64)

	bs, err := h.Svc.ListForOwner(c.Request().Context(), uid, state)
	if err != nil {
		return respond.Error(c, h.Log, "booking owner list", err)
	}
	return c.JSON(http.StatusOK, toResps(bs))
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
