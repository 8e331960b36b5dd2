// Package respond maps service error kinds to transport responses.
package respond

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"shareit/util/apperr"
)

var statuses = map[apperr.Kind]int{
	apperr.NotFound:        http.StatusNotFound,
	apperr.Forbidden:       http.StatusForbidden,
	apperr.InvalidArgument: http.StatusBadRequest,
	apperr.Conflict:        http.StatusConflict,
}

func Error(c echo.Context, log *slog.Logger, op string, err error) error {
	if status, ok := statuses[apperr.KindOf(err)]; ok {
		log.Warn(op, "err", err)
		return c.JSON(status, echo.Map{"message": err.Error()})
	}
	log.Error(op, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}
