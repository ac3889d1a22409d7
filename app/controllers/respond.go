package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ordena/ordena/app/services"
	"github.com/ordena/ordena/pkg/ctx"
	"github.com/ordena/ordena/pkg/logger"
)

// fail maps a service error onto the JSON error envelope. Expected
// failures keep their message; anything else becomes an opaque 500.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		c.Forbidden(err.Error())
	case errors.Is(err, services.ErrEmptyCart):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrPasswordRequired):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	case services.IsInsufficientStock(err):
		c.Error(http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "path", c.Path(), "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}

// paramUint parses a {param} path segment as an unsigned integer.
func paramUint(c *ctx.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.Error(http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// pageParams reads the page/limit query parameters.
func pageParams(c *ctx.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
