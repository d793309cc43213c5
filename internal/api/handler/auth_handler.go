package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/annuaire/directory-system/internal/api/metrics"
	"github.com/annuaire/directory-system/internal/core/ports"
	"github.com/annuaire/directory-system/internal/core/service"
)

// AuthHandler implements registration and login for the REST surface. The
// clear-text password never reaches the core: it is digested here, matching
// what console clients send over the PDU transport.
type AuthHandler struct {
	accounts  ports.AccountService
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(accounts ports.AccountService, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{accounts: accounts, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=administrateur utilisateur"`
}

type loginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token,omitempty"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Register creates a new account with an empty directory.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	digest := service.DigestPassword(req.Password)
	if err := h.accounts.Create(c.Request().Context(), req.Name, digest, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Name: req.Name, Role: req.Role})
}

// Login authenticates an account and returns a signed token carrying its
// identity and role.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	digest := service.DigestPassword(req.Password)
	role, err := h.accounts.Authenticate(c.Request().Context(), req.Name, digest)
	if err != nil {
		metrics.LoginFailuresTotal.Inc()
		return err
	}

	token, err := h.issueToken(req.Name, role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Name: req.Name, Role: role})
}

func (h *AuthHandler) issueToken(name, role string) (string, error) {
	claims := jwt.MapClaims{
		"name": name,
		"role": role,
		"exp":  time.Now().Add(h.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(h.jwtSecret))
}
