package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the staff name injected by the Auth middleware and
// performs a fast-fail check before any service call: a protected handler
// reached without a name means the middleware did not run, reject with 401.
func ctxActor(c echo.Context) (string, error) {
	actor, _ := c.Get("name").(string)
	if actor == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}
