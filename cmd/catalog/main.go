package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/assetbay/assetbay/cmd/catalog/handlers"
	"github.com/assetbay/assetbay/cmd/catalog/store"
	"github.com/assetbay/assetbay/common/bootstrap"
	"github.com/assetbay/assetbay/common/server"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	// The catalog serves a seeded in-memory dataset: no DB, redis or object store
	components, err := bootstrap.Setup(ctx, "catalog",
		bootstrap.WithoutDB(),
		bootstrap.WithoutRedis(),
		bootstrap.WithoutObjectStore(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to bootstrap catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())

	handlers.NewTrackHandler(store.NewSeeded(), components.Logger).Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "catalog",
		})
	})

	srv := server.New("catalog", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
