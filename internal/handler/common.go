package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/rental-marketplace/internal/validation"
)

// getUserID extracts the user_id placed into context by the JWT
// middleware and converts it to uint64.  JWT numeric claims decode as
// float64, so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// optionalUserID is getUserID for routes behind OptionalJWTAuth: it
// returns 0 for anonymous requests instead of an error.
func optionalUserID(c echo.Context) uint64 {
	id, err := getUserID(c)
	if err != nil {
		return 0
	}
	return id
}

// bindAndValidate binds the request body into req and runs its schema.
// On failure it writes the uniform field-error response and returns
// false; the handler should simply return nil in that case.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if errs := validation.Struct(req); len(errs) > 0 {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"errors": errs})
	}
	return true, nil
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parsePageQuery reads page/limit query parameters with the usual
// clamps: page >= 1, 1 <= limit <= 100 (default 10).
func parsePageQuery(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
