package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/dam/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// OwnerIDKey is the context key for the authenticated user's id
	OwnerIDKey ContextKey = "owner_id"
)

// RequireAuth validates the bearer token and stores the acting owner id in
// the request context. Requests without a valid token are rejected before
// any handler logic runs; the response carries a Bearer challenge.
func RequireAuth(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			bearer, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || bearer == "" {
				return challenge(c, "missing bearer token")
			}

			ownerID, err := token.Parse(bearer, jwtSecret)
			if err != nil {
				return challenge(c, "invalid token")
			}

			c.Set(string(OwnerIDKey), ownerID)
			return next(c)
		}
	}
}

// OwnerID retrieves the authenticated user's id from the request context.
// Returns 0 if the auth middleware did not run.
func OwnerID(c echo.Context) int64 {
	ownerID, _ := c.Get(string(OwnerIDKey)).(int64)
	return ownerID
}

func challenge(c echo.Context, detail string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"error": detail,
	})
}
