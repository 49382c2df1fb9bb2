package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/common/db"
)

// FolderRepository handles database operations for folders
type FolderRepository struct {
	db *db.DB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *db.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create inserts a new folder
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, parent_id, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.OwnerID,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by id scoped to its owner
func (r *FolderRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Folder, error) {
	query := `
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM folders
		WHERE id = $1 AND owner_id = $2
	`

	folder := &models.Folder{}
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.OwnerID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return folder, nil
}

// ListByOwner retrieves all folders owned by a user
func (r *FolderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Folder, error) {
	query := `
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM folders
		WHERE owner_id = $1
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		folder := &models.Folder{}
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.ParentID,
			&folder.OwnerID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	return folders, nil
}

// Delete removes a folder row. Child folders and assets referencing the id
// are left untouched; the stale references are a documented gap.
func (r *FolderRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM folders WHERE id = $1 AND owner_id = $2`

	result, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
