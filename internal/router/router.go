package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"clientdesk/internal/auth"
	"clientdesk/internal/handler"
	"clientdesk/internal/model"
)

// Handlers bundles everything the router needs to wire.
type Handlers struct {
	Auth        *handler.AuthHandler
	Dashboard   *handler.DashboardHandler
	Client      *handler.ClientHandler
	Category    *handler.CategoryHandler
	Export      *handler.ExportHandler
	Maintenance *handler.MaintenanceHandler
	User        *handler.UserHandler
}

// Register wires routes and middleware. Every route except the login entry
// point, health check and docs sits behind the session guard; the user
// management surface additionally requires the admin role.
func Register(e *echo.Echo, sessions *auth.SessionService, h Handlers) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public entry points
	e.GET("/", h.Auth.Index)
	e.POST("/login", h.Auth.Login)
	e.GET("/logout", h.Auth.Logout)

	guarded := e.Group("", auth.RequireSession(sessions))

	api := guarded.Group("/api")
	api.GET("/dashboard", h.Dashboard.Summary)

	api.GET("/clients", h.Client.List)
	api.POST("/clients", h.Client.Create)
	api.GET("/clients/:id", h.Client.Get)
	api.PUT("/clients/:id", h.Client.Update)
	api.DELETE("/clients/:id", h.Client.Delete)
	api.POST("/clients/bulk-delete", h.Client.BulkDelete)
	api.POST("/clients/bulk-category", h.Client.BulkUpdateCategory)
	api.POST("/clients/import", h.Client.Import)

	api.GET("/categories", h.Category.Stats)
	api.POST("/categories", h.Category.Add)
	api.DELETE("/categories/:name", h.Category.Delete)

	api.GET("/logs", h.Maintenance.RecentLogs)
	api.DELETE("/logs", h.Maintenance.ClearLogs)
	api.POST("/profile/password", h.User.ChangePassword)

	guarded.GET("/export/clients.csv", h.Export.ClientsCSV)
	guarded.GET("/export/clients.json", h.Export.ClientsJSON)
	guarded.GET("/export/logs.csv", h.Export.Logs)
	guarded.GET("/reports/summary", h.Export.Report)

	guarded.GET("/database/backup", h.Export.Backup)
	guarded.GET("/database/test-connection", h.Maintenance.TestConnection)
	guarded.POST("/database/optimize", h.Maintenance.Optimize)
	guarded.POST("/database/clear-cache", h.Maintenance.ClearCache)

	users := api.Group("/users", auth.RequireRole(model.RoleAdmin))
	users.GET("", h.User.List)
	users.POST("", h.User.Create)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
