package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dnexpress/logistics-api/internal/api/middleware"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// ctxActor extracts the actor injected by the Auth middleware. Absence means
// the route was wired without Auth; fail closed.
func ctxActor(c echo.Context) (ports.Actor, error) {
	actor, ok := c.Get(middleware.ActorKey).(ports.Actor)
	if !ok || actor.ID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// queryPage parses the limit/offset query parameters. Unparsable values fall
// back to defaults rather than erroring.
func queryPage(c echo.Context) ports.Page {
	page := ports.Page{}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page.Offset = n
		}
	}
	return page
}
