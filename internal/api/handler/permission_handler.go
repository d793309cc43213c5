package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/annuaire/directory-system/internal/core/ports"
)

// PermissionHandler exposes grant/revoke and the two permission listings.
// The owner side of every operation is the authenticated requester.
type PermissionHandler struct {
	permissions ports.PermissionService
}

func NewPermissionHandler(permissions ports.PermissionService) *PermissionHandler {
	return &PermissionHandler{permissions: permissions}
}

type grantRequest struct {
	Grantee string `json:"grantee" validate:"required"`
}

// Grant handles POST /v1/permissions.
func (h *PermissionHandler) Grant(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req grantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.permissions.Grant(c.Request().Context(), requester, req.Grantee); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"owner": requester, "grantee": req.Grantee})
}

// Revoke handles DELETE /v1/permissions/:grantee.
func (h *PermissionHandler) Revoke(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.permissions.Revoke(c.Request().Context(), requester, c.Param("grantee")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Granted handles GET /v1/permissions/granted — who may read my directory.
func (h *PermissionHandler) Granted(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	grantees, err := h.permissions.GranteesFor(c.Request().Context(), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"grantees": grantees})
}

// Received handles GET /v1/permissions/received — whose directories I may
// read.
func (h *PermissionHandler) Received(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	owners, err := h.permissions.GrantorsFor(c.Request().Context(), requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"owners": owners})
}
