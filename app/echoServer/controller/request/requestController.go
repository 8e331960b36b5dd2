package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/respond"
	requestsvc "shareit/service/request"
)

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	r, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return respond.Error(c, h.Log, "request create", err)
	}
	return c.JSON(http.StatusCreated, r)
}

// GET /requests
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	rs, err := h.Svc.ForUser(c.Request().Context(), uid)
	if err != nil {
		return respond.Error(c, h.Log, "request list", err)
	}
	return c.JSON(http.StatusOK, rs)
}

// GET /requests/all?from=0&size=10
func (h *Controller) ListOthers(c echo.Context) error {
	from, err := queryInt(c, "from", 0)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid from"})
	}
	size, err := queryInt(c, "size", 10)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid size"})
	}
	uid, _ := c.Get("user_id").(int64)

	rs, err := h.Svc.Others(c.Request().Context(), uid, from, size)
	if err != nil {
		return respond.Error(c, h.Log, "request list others", err)
	}
	return c.JSON(http.StatusOK, rs)
}

// GET /requests/:requestId
func (h *Controller) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("requestId"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	r, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return respond.Error(c, h.Log, "request get", err)
	}
	return c.JSON(http.StatusOK, r)
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
