package service

import (
	"context"
	"io"
	"time"

	"github.com/assetbay/assetbay/cmd/dam/models"
)

// The services accept narrow store interfaces so tests can swap in fakes.
// Production wiring passes the pgx/redis/minio repositories from cmd/dam.

// AssetStore is the authoritative relational store for assets and tags
type AssetStore interface {
	CreateWithTags(ctx context.Context, asset *models.Asset, tagNames []string) ([]models.Tag, error)
	GetByID(ctx context.Context, id, ownerID int64) (*models.Asset, error)
	List(ctx context.Context, ownerID int64, folderID *int64, tagName string) ([]*models.Asset, error)
	TagsForAssets(ctx context.Context, assetIDs []int64) (map[int64][]models.Tag, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// FolderStore is the authoritative relational store for folders
type FolderStore interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id, ownerID int64) (*models.Folder, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Folder, error)
	Delete(ctx context.Context, id, ownerID int64) error
}

// UserStore is the authoritative relational store for users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// BlobStore holds raw asset payloads addressed by opaque generated keys
type BlobStore interface {
	Put(ctx context.Context, filename, contentType string, payload io.Reader) (key string, size int64, err error)
	Delete(ctx context.Context, key string) error
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// MetadataIndex is the denormalized, eventually-consistent metadata copy.
// Write errors are recorded but never propagated to callers; reads serve the
// audit listing and do surface failures.
type MetadataIndex interface {
	Put(ctx context.Context, record *models.IndexRecord) error
	Remove(ctx context.Context, ownerID, assetID int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.IndexRecord, error)
}
