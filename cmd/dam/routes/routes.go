package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/dam/handlers"
	"github.com/assetbay/assetbay/cmd/dam/middleware"
)

// RegisterAuthRoutes registers the authentication endpoints. The credential
// endpoints are public behind the optional rate limit; /me sits behind the
// auth gate like the rest of the API.
func RegisterAuthRoutes(e *echo.Echo, h *handlers.AuthHandler, jwtSecret []byte, limitMW ...echo.MiddlewareFunc) {
	group := e.Group("/api/v1/auth")
	group.POST("/register", h.Register, limitMW...)
	group.POST("/login", h.Login, limitMW...)
	group.GET("/me", h.Me, middleware.RequireAuth(jwtSecret))
}

// RegisterAssetRoutes registers the asset endpoints behind the auth gate
func RegisterAssetRoutes(e *echo.Echo, h *handlers.AssetHandler, jwtSecret []byte) {
	group := e.Group("/api/v1/assets", middleware.RequireAuth(jwtSecret))
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/audit", h.Audit)
	group.DELETE("/:id", h.Delete)
}

// RegisterFolderRoutes registers the folder endpoints behind the auth gate
func RegisterFolderRoutes(e *echo.Echo, h *handlers.FolderHandler, jwtSecret []byte) {
	group := e.Group("/api/v1/folders", middleware.RequireAuth(jwtSecret))
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/tree", h.Tree)
	group.DELETE("/:id", h.Delete)
}
