package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/dam/middleware"
	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/common/logger"
)

// AuthOps is what the auth handler needs from the auth service
type AuthOps interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID int64) (*models.User, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	auth AuthOps
	log  *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthOps, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new user
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
	}

	user, err := h.auth.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.log.Error("registration failed", "email", req.Email, "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a bearer token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	signed, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return httpError(err)
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := h.auth.Me(c.Request().Context(), middleware.OwnerID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, user)
}
