package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/zWyrm/rewear-teamtan/internal/auth"
	"github.com/zWyrm/rewear-teamtan/internal/config"
	"github.com/zWyrm/rewear-teamtan/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	revocation auth.RevocationStore,
	authHandler *handler.AuthHandler,
	itemHandler *handler.ItemHandler,
	swapHandler *handler.SwapHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/items", itemHandler.List)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), auth.RequireNotRevoked(revocation))

	secured.GET("/auth/me", authHandler.Me)

	// Item routes
	api.GET("/items/:id", itemHandler.Get)
	secured.POST("/items", itemHandler.Create)
	secured.PATCH("/items/:id", itemHandler.Update)
	secured.GET("/my-items", itemHandler.Mine)

	// Swap routes
	secured.POST("/swaps", swapHandler.Create)
	secured.PATCH("/swaps/:id", swapHandler.UpdateStatus)
	secured.GET("/my-swaps", swapHandler.Mine)

	// Admin routes
	admin := secured.Group("/admin", auth.RequireAdmin)
	admin.GET("/pending-items", adminHandler.PendingItems)
	admin.PATCH("/items/:id/approve", adminHandler.ApproveItem)
	admin.DELETE("/items/:id", adminHandler.RejectItem)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users/:id/suspend", adminHandler.SuspendUser)
	admin.POST("/users/:id/cancel-suspension", adminHandler.CancelSuspension)
	admin.POST("/users/:id/ban", adminHandler.BanUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
