package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/annuaire/directory-system/internal/core/ports"
	"github.com/annuaire/directory-system/internal/core/service"
)

// AccountHandler exposes the administrative account operations. Routes using
// it sit behind RBAC(administrateur); listing names is open to any
// authenticated account because the original account list was public.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// List handles GET /v1/accounts.
func (h *AccountHandler) List(c echo.Context) error {
	names, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"accounts": names})
}

// Stats handles GET /v1/admin/stats.
func (h *AccountHandler) Stats(c echo.Context) error {
	stats, err := h.accounts.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"accounts": stats})
}

type updateAccountRequest struct {
	NewPassword string `json:"new_password"`
	NewRole     string `json:"new_role" validate:"omitempty,oneof=administrateur utilisateur"`
}

// Update handles PATCH /v1/accounts/:name — omitted fields are left
// unchanged.
func (h *AccountHandler) Update(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.UpdateAccountInput{
		Name:    c.Param("name"),
		NewRole: req.NewRole,
	}
	if req.NewPassword != "" {
		input.NewDigest = service.DigestPassword(req.NewPassword)
	}
	if err := h.accounts.Update(c.Request().Context(), input); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/accounts/:name and cascades to the account's
// directory and permissions. Administrators cannot delete themselves while
// logged in.
func (h *AccountHandler) Delete(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	if name == requester {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}

	if err := h.accounts.Delete(c.Request().Context(), name); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
