package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/annuaire/directory-system/internal/api/handler"
	"github.com/annuaire/directory-system/internal/api/middleware"
	"github.com/annuaire/directory-system/internal/core/dispatch"
	"github.com/annuaire/directory-system/internal/core/domain"
	"github.com/annuaire/directory-system/internal/core/ports"
	"github.com/annuaire/directory-system/internal/core/service"
)

// Dependencies bundles everything the router needs to wire the handlers.
type Dependencies struct {
	Accounts    ports.AccountRepository
	Directories ports.DirectoryRepository
	Permissions ports.PermissionRepository
	Storage     handler.Pinger
	JWTSecret   string
	TokenTTL    time.Duration
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Core services ---
	access := service.NewAccess(deps.Permissions)
	accountService := service.NewAccountService(deps.Accounts, deps.Directories, deps.Permissions, deps.Logger)
	directoryService := service.NewDirectoryService(deps.Directories, access, deps.Logger)
	permissionService := service.NewPermissionService(deps.Permissions, deps.Logger)
	dispatcher := dispatch.NewDispatcher(accountService, directoryService, permissionService, deps.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(accountService, deps.JWTSecret, deps.TokenTTL)
	directoryHandler := handler.NewDirectoryHandler(directoryService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	accountHandler := handler.NewAccountHandler(accountService)
	pduHandler := handler.NewPDUHandler(dispatcher)
	healthHandler := handler.NewHealthHandler(deps.Storage)

	authRequired := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- PDU entry point (transport collaborator surface) ---
	e.POST("/v1/pdu", pduHandler.Handle)

	// --- Directory routes (requester = token subject) ---
	v1 := e.Group("/v1", authRequired)
	v1.GET("/directories/:owner/contacts", directoryHandler.List)
	v1.GET("/directories/:owner/contacts/search", directoryHandler.Search)
	v1.POST("/contacts", directoryHandler.Add)
	v1.PUT("/contacts/:surname/:first_name", directoryHandler.Update)
	v1.DELETE("/contacts/:surname/:first_name", directoryHandler.Remove)

	// --- Permission routes ---
	v1.POST("/permissions", permissionHandler.Grant)
	v1.DELETE("/permissions/:grantee", permissionHandler.Revoke)
	v1.GET("/permissions/granted", permissionHandler.Granted)
	v1.GET("/permissions/received", permissionHandler.Received)

	// --- Account routes ---
	v1.GET("/accounts", accountHandler.List)
	admin := e.Group("/v1/admin", authRequired, adminOnly)
	admin.GET("/stats", accountHandler.Stats)
	admin.PATCH("/accounts/:name", accountHandler.Update)
	admin.DELETE("/accounts/:name", accountHandler.Delete)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
