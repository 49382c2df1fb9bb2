package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/common/redis"
)

// MetadataIndexRepository duplicates asset metadata into the secondary index:
// one JSON document per (owner, asset) plus a per-owner set ordered by
// creation time for audit-style listing. Writes here are best-effort; the
// caller decides whether a failure is fatal (it never is for the coordinator).
type MetadataIndexRepository struct {
	redis *redis.Client
}

// NewMetadataIndexRepository creates a new metadata index repository
func NewMetadataIndexRepository(redis *redis.Client) *MetadataIndexRepository {
	return &MetadataIndexRepository{redis: redis}
}

func recordKey(ownerID, assetID int64) string {
	return fmt.Sprintf("asset:%d:%d", ownerID, assetID)
}

func ownerSetKey(ownerID int64) string {
	return fmt.Sprintf("owner:%d:assets", ownerID)
}

// Put writes the denormalized record and registers it in the owner's
// creation-time ordering, as one pipelined round-trip.
func (r *MetadataIndexRepository) Put(ctx context.Context, record *models.IndexRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal index record: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to parse record timestamp: %w", err)
	}

	pipe := r.redis.NewPipeline()
	pipe.Set(ctx, recordKey(record.OwnerID, record.AssetID), string(payload), 0)
	pipe.AddToSortedSet(ctx, ownerSetKey(record.OwnerID), recordKey(record.OwnerID, record.AssetID), float64(createdAt.Unix()))

	if err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write index record: %w", err)
	}

	return nil
}

// ListByOwner retrieves all of an owner's records ordered by creation time.
// Records whose document has gone missing are skipped, not errors: the index
// is eventually consistent by contract.
func (r *MetadataIndexRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.IndexRecord, error) {
	keys, err := r.redis.RangeSortedSet(ctx, ownerSetKey(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list owner records: %w", err)
	}

	docs, err := r.redis.GetMultiple(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch owner records: %w", err)
	}

	records := make([]*models.IndexRecord, 0, len(keys))
	for _, key := range keys {
		raw, ok := docs[key]
		if !ok {
			continue
		}
		record := &models.IndexRecord{}
		if err := json.Unmarshal([]byte(raw), record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal index record %s: %w", key, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Remove deletes the record and its ordering entry
func (r *MetadataIndexRepository) Remove(ctx context.Context, ownerID, assetID int64) error {
	pipe := r.redis.NewPipeline()
	pipe.Delete(ctx, recordKey(ownerID, assetID))
	pipe.RemoveFromSortedSet(ctx, ownerSetKey(ownerID), recordKey(ownerID, assetID))

	if err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove index record: %w", err)
	}

	return nil
}
