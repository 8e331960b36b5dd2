package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"shareit/app/echoServer/respond"
	commentsvc "shareit/service/comment"
	itemsvc "shareit/service/item"
)

type Controller struct {
	Svc      itemsvc.Service
	Comments commentsvc.Service
	V        *validator.Validate
	Log      *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Create(c.Request().Context(), uid, itemsvc.CreateReq{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return respond.Error(c, h.Log, "item create", err)
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:itemId
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), uid, id, itemsvc.Patch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return respond.Error(c, h.Log, "item update", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:itemId
func (h *Controller) Get(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		return respond.Error(c, h.Log, "item get", err)
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items
func (h *Controller) ListOwn(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	items, err := h.Svc.ByOwner(c.Request().Context(), uid)
	if err != nil {
		return respond.Error(c, h.Log, "item list", err)
	}
	return c.JSON(http.StatusOK, items)
}

// GET /items/search?text=
func (h *Controller) Search(c echo.Context) error {
	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"))
	if err != nil {
		return respond.Error(c, h.Log, "item search", err)
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:itemId/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := pathID(c, "itemId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddCommentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	uid, _ := c.Get("user_id").(int64)

	cm, err := h.Comments.Add(c.Request().Context(), uid, id, req.Text)
	if err != nil {
		return respond.Error(c, h.Log, "comment add", err)
	}
	return c.JSON(http.StatusCreated, cm)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
