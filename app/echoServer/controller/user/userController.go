package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/respond"
	usersvc "shareit/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return respond.Error(c, h.Log, "user create", err)
	}
	return c.JSON(http.StatusCreated, u)
}

// PATCH /users/:userId
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, usersvc.Patch{Name: req.Name, Email: req.Email})
	if err != nil {
		return respond.Error(c, h.Log, "user update", err)
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users/:userId
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, h.Log, "user get", err)
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:userId
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return respond.Error(c, h.Log, "user delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /users
func (h *Controller) List(c echo.Context) error {
	users, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return respond.Error(c, h.Log, "user list", err)
	}
	return c.JSON(http.StatusOK, users)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
