package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/common/db"
)

// AssetRepository handles database operations for assets and their tag set
type AssetRepository struct {
	db *db.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *db.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// CreateWithTags resolves each tag name to the owner's existing tag row (or
// creates one), inserts the asset row and its junction rows, all inside one
// transaction. Either everything commits or no metadata exists.
//
// Tag resolution is an upsert keyed on (owner_id, name): concurrent creates
// of the same name converge on a single row instead of racing past a lookup.
func (r *AssetRepository) CreateWithTags(ctx context.Context, asset *models.Asset, tagNames []string) ([]models.Tag, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsertTag := `
		INSERT INTO tags (name, owner_id)
		VALUES ($1, $2)
		ON CONFLICT (owner_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, owner_id, created_at
	`

	tags := make([]models.Tag, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		if seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := tx.QueryRow(ctx, upsertTag, name, asset.OwnerID).Scan(
			&tag.ID,
			&tag.Name,
			&tag.OwnerID,
			&tag.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	insertAsset := `
		INSERT INTO assets (name, description, mime_type, size_bytes, storage_key, folder_id, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, insertAsset,
		asset.Name,
		asset.Description,
		asset.MimeType,
		asset.SizeBytes,
		asset.StorageKey,
		asset.FolderID,
		asset.OwnerID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	insertLink := `INSERT INTO asset_tags (asset_id, tag_id) VALUES ($1, $2)`
	for _, tag := range tags {
		if _, err := tx.Exec(ctx, insertLink, asset.ID, tag.ID); err != nil {
			return nil, fmt.Errorf("failed to link tag %d: %w", tag.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit asset: %w", err)
	}

	return tags, nil
}

// GetByID retrieves an asset by id scoped to its owner
func (r *AssetRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Asset, error) {
	query := `
		SELECT id, name, description, mime_type, size_bytes, storage_key, folder_id, owner_id, created_at, updated_at
		FROM assets
		WHERE id = $1 AND owner_id = $2
	`

	asset := &models.Asset{}
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&asset.ID,
		&asset.Name,
		&asset.Description,
		&asset.MimeType,
		&asset.SizeBytes,
		&asset.StorageKey,
		&asset.FolderID,
		&asset.OwnerID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return asset, nil
}

// List retrieves all assets scoped to an owner, optionally filtered by
// folder and by a single tag name. Tag annotation is a separate batched
// fetch (TagsForAssets), not part of this query.
func (r *AssetRepository) List(ctx context.Context, ownerID int64, folderID *int64, tagName string) ([]*models.Asset, error) {
	query := `
		SELECT a.id, a.name, a.description, a.mime_type, a.size_bytes, a.storage_key, a.folder_id, a.owner_id, a.created_at, a.updated_at
		FROM assets a
	`
	args := []interface{}{ownerID}
	where := ` WHERE a.owner_id = $1`

	if tagName != "" {
		query += `
		JOIN asset_tags at ON at.asset_id = a.id
		JOIN tags t ON t.id = at.tag_id`
		args = append(args, tagName)
		where += fmt.Sprintf(" AND t.name = $%d", len(args))
	}
	if folderID != nil {
		args = append(args, *folderID)
		where += fmt.Sprintf(" AND a.folder_id = $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*models.Asset
	for rows.Next() {
		asset := &models.Asset{}
		err := rows.Scan(
			&asset.ID,
			&asset.Name,
			&asset.Description,
			&asset.MimeType,
			&asset.SizeBytes,
			&asset.StorageKey,
			&asset.FolderID,
			&asset.OwnerID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// TagsForAssets retrieves the tag sets for all given assets in one query,
// keyed by asset id.
func (r *AssetRepository) TagsForAssets(ctx context.Context, assetIDs []int64) (map[int64][]models.Tag, error) {
	result := make(map[int64][]models.Tag)
	if len(assetIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT at.asset_id, t.id, t.name, t.owner_id, t.created_at
		FROM asset_tags at
		JOIN tags t ON t.id = at.tag_id
		WHERE at.asset_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, assetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var assetID int64
		var tag models.Tag
		err := rows.Scan(&assetID, &tag.ID, &tag.Name, &tag.OwnerID, &tag.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset tag: %w", err)
		}
		result[assetID] = append(result[assetID], tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset tags: %w", err)
	}

	return result, nil
}

// Delete removes an asset row. Junction rows cascade with it.
func (r *AssetRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM assets WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
