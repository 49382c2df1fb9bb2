package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/dam/middleware"
	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/common/logger"
)

// FolderOps is what the folder handler needs from the folder service
type FolderOps interface {
	Create(ctx context.Context, ownerID int64, name string, parentID *int64) (*models.Folder, error)
	List(ctx context.Context, ownerID int64) ([]*models.Folder, error)
	Tree(ctx context.Context, ownerID int64) ([]*models.FolderNode, error)
	Delete(ctx context.Context, ownerID, folderID int64) error
}

// FolderHandler handles folder hierarchy requests
type FolderHandler struct {
	folders FolderOps
	log     *logger.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folders FolderOps, log *logger.Logger) *FolderHandler {
	return &FolderHandler{
		folders: folders,
		log:     log,
	}
}

type createFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// Create creates a folder
// POST /api/v1/folders
func (h *FolderHandler) Create(c echo.Context) error {
	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	folder, err := h.folders.Create(c.Request().Context(), middleware.OwnerID(c), req.Name, req.ParentID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, folder)
}

// List returns the caller's folders, flat and unordered
// GET /api/v1/folders
func (h *FolderHandler) List(c echo.Context) error {
	folders, err := h.folders.List(c.Request().Context(), middleware.OwnerID(c))
	if err != nil {
		return httpError(err)
	}

	if folders == nil {
		folders = []*models.Folder{}
	}
	return c.JSON(http.StatusOK, folders)
}

// Tree returns the caller's folders as a forest
// GET /api/v1/folders/tree
func (h *FolderHandler) Tree(c echo.Context) error {
	tree, err := h.folders.Tree(c.Request().Context(), middleware.OwnerID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, tree)
}

// Delete removes a folder
// DELETE /api/v1/folders/:id
func (h *FolderHandler) Delete(c echo.Context) error {
	folderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid folder id")
	}

	if err := h.folders.Delete(c.Request().Context(), middleware.OwnerID(c), folderID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
