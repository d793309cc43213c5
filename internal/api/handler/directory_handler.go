package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
)

// DirectoryHandler exposes contact CRUD and search. The requester is always
// the authenticated token subject; the :owner path parameter only selects
// whose directory to read.
type DirectoryHandler struct {
	directories ports.DirectoryService
}

func NewDirectoryHandler(directories ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directories: directories}
}

type contactRequest struct {
	Surname   string `json:"surname"    validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email"      validate:"required,email"`
}

func (r contactRequest) toDomain() domain.Contact {
	return domain.Contact{
		Surname:   r.Surname,
		FirstName: r.FirstName,
		Phone:     r.Phone,
		Address:   r.Address,
		Email:     r.Email,
	}
}

type contactListResponse struct {
	Owner    string           `json:"owner"`
	Contacts []domain.Contact `json:"contacts"`
}

// List handles GET /v1/directories/:owner/contacts.
func (h *DirectoryHandler) List(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	owner := c.Param("owner")

	contacts, err := h.directories.List(c.Request().Context(), owner, requester)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactListResponse{Owner: owner, Contacts: contacts})
}

// Search handles GET /v1/directories/:owner/contacts/search?q=term.
func (h *DirectoryHandler) Search(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	owner := c.Param("owner")
	term := c.QueryParam("q")

	contacts, err := h.directories.Search(c.Request().Context(), owner, requester, term)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactListResponse{Owner: owner, Contacts: contacts})
}

// Add handles POST /v1/contacts — always writes to the requester's own
// directory.
func (h *DirectoryHandler) Add(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.directories.Add(c.Request().Context(), requester, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, req)
}

// Update handles PUT /v1/contacts/:surname/:first_name with a full
// replacement row.
func (h *DirectoryHandler) Update(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Surname = c.Param("surname")
	req.FirstName = c.Param("first_name")

	if err := h.directories.Update(c.Request().Context(), requester, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, req)
}

// Remove handles DELETE /v1/contacts/:surname/:first_name.
func (h *DirectoryHandler) Remove(c echo.Context) error {
	requester, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	key := domain.ContactKey{
		Surname:   c.Param("surname"),
		FirstName: c.Param("first_name"),
	}
	if err := h.directories.Remove(c.Request().Context(), requester, key); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
