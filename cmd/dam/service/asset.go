package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/cmd/dam/repository"
	"github.com/assetbay/assetbay/common/logger"
)

// External-store calls run under bounded timeouts so a hung backend maps to
// a typed failure instead of stalling the request indefinitely.
const (
	blobCallTimeout  = 30 * time.Second
	indexCallTimeout = 5 * time.Second

	// presignedURLExpiry bounds the signed retrieval URL in asset projections
	presignedURLExpiry = 1 * time.Hour
)

// AssetService coordinates the asset lifecycle across three stores that share
// no transaction boundary: the relational store (authoritative), the blob
// store (written before the row exists) and the metadata index (written after
// the row commits, best-effort).
//
// Failure policy: a failed blob write leaves no metadata row; a failed blob
// delete leaves the row in place; an index failure is logged and swallowed.
// There is no compensating rollback between stores.
type AssetService struct {
	assets  AssetStore
	folders FolderStore
	blobs   BlobStore
	index   MetadataIndex
	log     *logger.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(assets AssetStore, folders FolderStore, blobs BlobStore, index MetadataIndex, log *logger.Logger) *AssetService {
	return &AssetService{
		assets:  assets,
		folders: folders,
		blobs:   blobs,
		index:   index,
		log:     log,
	}
}

// CreateInput carries one upload request into the coordinator
type CreateInput struct {
	OwnerID     int64
	Filename    string
	ContentType string
	Payload     io.Reader
	Name        string
	Description *string
	FolderID    *int64
	TagNames    []string
}

// Create runs the upload sequence: folder ownership check, blob write under a
// fresh key, tag resolution + asset insert in one relational transaction,
// then the best-effort index mirror.
func (s *AssetService) Create(ctx context.Context, in CreateInput) (*models.AssetProjection, error) {
	if in.FolderID != nil {
		if _, err := s.folders.GetByID(ctx, *in.FolderID, in.OwnerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("folder %d: %w", *in.FolderID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check folder: %w", err)
		}
	}

	blobCtx, cancel := context.WithTimeout(ctx, blobCallTimeout)
	key, size, err := s.blobs.Put(blobCtx, in.Filename, in.ContentType, in.Payload)
	cancel()
	if err != nil {
		s.log.Error("blob write failed", "owner_id", in.OwnerID, "name", in.Name, "error", err)
		return nil, fmt.Errorf("%w: %s", ErrStorageWrite, err)
	}

	asset := &models.Asset{
		Name:        in.Name,
		Description: in.Description,
		MimeType:    in.ContentType,
		SizeBytes:   size,
		StorageKey:  key,
		FolderID:    in.FolderID,
		OwnerID:     in.OwnerID,
	}

	tags, err := s.assets.CreateWithTags(ctx, asset, in.TagNames)
	if err != nil {
		return nil, fmt.Errorf("failed to persist asset: %w", err)
	}

	s.log.Info("asset created",
		"asset_id", asset.ID,
		"owner_id", asset.OwnerID,
		"storage_key", key,
		"size_bytes", size,
		"tags", len(tags),
	)

	s.mirrorToIndex(ctx, asset, tags)

	return s.project(ctx, asset, tags)
}

// mirrorToIndex duplicates the committed asset into the secondary index.
// Failures are routed to the log only: the index is eventually consistent by
// contract and must never abort or roll back the authoritative commit.
func (s *AssetService) mirrorToIndex(ctx context.Context, asset *models.Asset, tags []models.Tag) {
	refs := make([]models.TagRef, 0, len(tags))
	for _, tag := range tags {
		refs = append(refs, models.TagRef{ID: tag.ID, Name: tag.Name})
	}

	record := &models.IndexRecord{
		OwnerID:     asset.OwnerID,
		AssetID:     asset.ID,
		Name:        asset.Name,
		Description: asset.Description,
		MimeType:    asset.MimeType,
		SizeBytes:   asset.SizeBytes,
		StorageKey:  asset.StorageKey,
		FolderID:    asset.FolderID,
		Tags:        refs,
		CreatedAt:   asset.CreatedAt.UTC().Format(time.RFC3339),
	}

	indexCtx, cancel := context.WithTimeout(ctx, indexCallTimeout)
	defer cancel()

	if err := s.index.Put(indexCtx, record); err != nil {
		s.log.Error("secondary index write failed",
			"asset_id", asset.ID,
			"owner_id", asset.OwnerID,
			"error", err,
		)
		return
	}

	s.log.Debug("secondary index updated", "asset_id", asset.ID, "owner_id", asset.OwnerID)
}

// Delete removes an asset. The blob is deleted before the row: if the blob
// delete fails the row survives, so no live metadata ever references a blob
// the system gave up on deleting.
func (s *AssetService) Delete(ctx context.Context, ownerID, assetID int64) error {
	asset, err := s.assets.GetByID(ctx, assetID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("asset %d: %w", assetID, ErrNotFound)
		}
		return fmt.Errorf("failed to look up asset: %w", err)
	}

	blobCtx, cancel := context.WithTimeout(ctx, blobCallTimeout)
	err = s.blobs.Delete(blobCtx, asset.StorageKey)
	cancel()
	if err != nil {
		s.log.Error("blob delete failed, keeping asset row",
			"asset_id", assetID,
			"storage_key", asset.StorageKey,
			"error", err,
		)
		return fmt.Errorf("%w: %s", ErrStorageDelete, err)
	}

	indexCtx, cancel := context.WithTimeout(ctx, indexCallTimeout)
	if err := s.index.Remove(indexCtx, ownerID, assetID); err != nil {
		s.log.Error("secondary index delete failed",
			"asset_id", assetID,
			"owner_id", ownerID,
			"error", err,
		)
	}
	cancel()

	if err := s.assets.Delete(ctx, assetID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("asset %d: %w", assetID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete asset row: %w", err)
	}

	s.log.Info("asset deleted", "asset_id", assetID, "owner_id", ownerID)
	return nil
}

// List returns all matching assets scoped to the owner, each annotated with
// its full current tag set. Tags for every matched asset come from one
// batched fetch, not one query per asset.
func (s *AssetService) List(ctx context.Context, ownerID int64, folderID *int64, tagName string) ([]*models.AssetProjection, error) {
	assets, err := s.assets.List(ctx, ownerID, folderID, tagName)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	assetIDs := make([]int64, 0, len(assets))
	for _, asset := range assets {
		assetIDs = append(assetIDs, asset.ID)
	}

	tagsByAsset, err := s.assets.TagsForAssets(ctx, assetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tags: %w", err)
	}

	projections := make([]*models.AssetProjection, 0, len(assets))
	for _, asset := range assets {
		projection, err := s.project(ctx, asset, tagsByAsset[asset.ID])
		if err != nil {
			return nil, err
		}
		projections = append(projections, projection)
	}

	return projections, nil
}

// Audit returns the owner's assets as the secondary index sees them, in
// creation order. The view is eventually consistent: an asset whose index
// write was swallowed is absent here while still present in List.
func (s *AssetService) Audit(ctx context.Context, ownerID int64) ([]*models.IndexRecord, error) {
	indexCtx, cancel := context.WithTimeout(ctx, indexCallTimeout)
	defer cancel()

	records, err := s.index.ListByOwner(indexCtx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	if records == nil {
		records = []*models.IndexRecord{}
	}
	return records, nil
}

func (s *AssetService) project(ctx context.Context, asset *models.Asset, tags []models.Tag) (*models.AssetProjection, error) {
	urlCtx, cancel := context.WithTimeout(ctx, indexCallTimeout)
	defer cancel()

	fileURL, err := s.blobs.PresignedURL(urlCtx, asset.StorageKey, presignedURLExpiry)
	if err != nil {
		s.log.Error("presign failed", "asset_id", asset.ID, "storage_key", asset.StorageKey, "error", err)
		fileURL = ""
	}

	if tags == nil {
		tags = []models.Tag{}
	}

	return &models.AssetProjection{
		ID:          asset.ID,
		Name:        asset.Name,
		Description: asset.Description,
		FolderID:    asset.FolderID,
		MimeType:    asset.MimeType,
		SizeBytes:   asset.SizeBytes,
		FileURL:     fileURL,
		CreatedAt:   asset.CreatedAt,
		UpdatedAt:   asset.UpdatedAt,
		Tags:        tags,
	}, nil
}
