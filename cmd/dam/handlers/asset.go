package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/assetbay/assetbay/cmd/dam/middleware"
	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/cmd/dam/service"
	"github.com/assetbay/assetbay/common/logger"
)

// AssetOps is what the asset handler needs from the lifecycle coordinator
type AssetOps interface {
	Create(ctx context.Context, in service.CreateInput) (*models.AssetProjection, error)
	List(ctx context.Context, ownerID int64, folderID *int64, tagName string) ([]*models.AssetProjection, error)
	Audit(ctx context.Context, ownerID int64) ([]*models.IndexRecord, error)
	Delete(ctx context.Context, ownerID, assetID int64) error
}

// AssetHandler handles asset upload, listing and deletion
type AssetHandler struct {
	assets AssetOps
	log    *logger.Logger
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets AssetOps, log *logger.Logger) *AssetHandler {
	return &AssetHandler{
		assets: assets,
		log:    log,
	}
}

// Create uploads a payload and creates the asset metadata.
// POST /api/v1/assets
// Multipart fields: file (required), name (required), description,
// folder_id, tags (JSON array of names, default []).
func (h *AssetHandler) Create(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	name := c.FormValue("name")
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	var description *string
	if v := c.FormValue("description"); v != "" {
		description = &v
	}

	var folderID *int64
	if v := c.FormValue("folder_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid folder_id")
		}
		folderID = &id
	}

	tagNames := []string{}
	if v := c.FormValue("tags"); v != "" {
		if err := json.Unmarshal([]byte(v), &tagNames); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "tags must be a JSON array of strings")
		}
	}

	payload, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read file")
	}
	defer payload.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	projection, err := h.assets.Create(c.Request().Context(), service.CreateInput{
		OwnerID:     middleware.OwnerID(c),
		Filename:    fileHeader.Filename,
		ContentType: contentType,
		Payload:     payload,
		Name:        name,
		Description: description,
		FolderID:    folderID,
		TagNames:    tagNames,
	})
	if err != nil {
		h.log.Error("asset upload failed", "owner_id", middleware.OwnerID(c), "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, projection)
}

// List returns the caller's assets, optionally filtered
// GET /api/v1/assets?folder_id=&tag=
func (h *AssetHandler) List(c echo.Context) error {
	var folderID *int64
	if v := c.QueryParam("folder_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid folder_id")
		}
		folderID = &id
	}

	projections, err := h.assets.List(c.Request().Context(), middleware.OwnerID(c), folderID, c.QueryParam("tag"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, projections)
}

// Audit returns the caller's assets as recorded in the secondary index,
// ordered by creation time. The view may lag the authoritative listing.
// GET /api/v1/assets/audit
func (h *AssetHandler) Audit(c echo.Context) error {
	records, err := h.assets.Audit(c.Request().Context(), middleware.OwnerID(c))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, records)
}

// Delete removes an asset and its stored payload
// DELETE /api/v1/assets/:id
func (h *AssetHandler) Delete(c echo.Context) error {
	assetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid asset id")
	}

	if err := h.assets.Delete(c.Request().Context(), middleware.OwnerID(c), assetID); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
