package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty name proves the middleware
// ran and the token carried a usable subject.
func ctxIdentity(c echo.Context) (name, role string, err error) {
	name, _ = c.Get("name").(string)
	if name == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return name, role, nil
}
