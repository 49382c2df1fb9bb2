package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/assetbay/assetbay/cmd/dam/handlers"
	"github.com/assetbay/assetbay/cmd/dam/repository"
	"github.com/assetbay/assetbay/cmd/dam/routes"
	"github.com/assetbay/assetbay/cmd/dam/service"
	"github.com/assetbay/assetbay/common/bootstrap"
	commonmw "github.com/assetbay/assetbay/common/middleware"
	"github.com/assetbay/assetbay/common/ratelimit"
	"github.com/assetbay/assetbay/common/server"
)

func main() {
	ctx := context.Background()

	// Optional .env for local development; real deployments set the env
	_ = godotenv.Load()

	// Bootstrap shared components (config, logger, DB+migrations, redis, object store).
	// Any missing required setting fails here, before the server accepts traffic.
	components, err := bootstrap.Setup(ctx, "dam")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to bootstrap dam: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	if err := components.Config.ValidateAuth(); err != nil {
		fmt.Fprintf(os.Stderr, "auth config: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho()
	registerRoutes(e, components)

	srv := server.New("dam", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
	return e
}

// registerRoutes wires repositories, services and handlers
func registerRoutes(e *echo.Echo, components *bootstrap.Components) {
	log := components.Logger
	jwtSecret := []byte(components.Config.Auth.JWTSecret)

	userRepo := repository.NewUserRepository(components.DB)
	folderRepo := repository.NewFolderRepository(components.DB)
	assetRepo := repository.NewAssetRepository(components.DB)
	indexRepo := repository.NewMetadataIndexRepository(components.Redis)

	authSvc := service.NewAuthService(userRepo, jwtSecret, components.Config.Auth.TokenExpiry, log)
	folderSvc := service.NewFolderService(folderRepo, log)
	assetSvc := service.NewAssetService(assetRepo, folderRepo, components.ObjectStore, indexRepo, log)

	// Throttle credential guessing per client IP
	var authMW []echo.MiddlewareFunc
	if rl := components.Config.RateLimit; rl.Enabled {
		limiter := ratelimit.New(components.Redis.GetUnderlying(), log)
		authMW = append(authMW, commonmw.RateLimitByIP(limiter, "auth", int64(rl.AuthLimit), rl.AuthWindow))
	}

	routes.RegisterAuthRoutes(e, handlers.NewAuthHandler(authSvc, log), jwtSecret, authMW...)
	routes.RegisterAssetRoutes(e, handlers.NewAssetHandler(assetSvc, log), jwtSecret)
	routes.RegisterFolderRoutes(e, handlers.NewFolderHandler(folderSvc, log), jwtSecret)

	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "dam",
		})
	})
}
