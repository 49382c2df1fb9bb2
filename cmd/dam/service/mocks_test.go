package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/cmd/dam/repository"
	"github.com/assetbay/assetbay/common/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// fakeFolderStore is an in-memory FolderStore
type fakeFolderStore struct {
	nextID  int64
	folders map[int64]*models.Folder
}

func newFakeFolderStore() *fakeFolderStore {
	return &fakeFolderStore{
		nextID:  1,
		folders: make(map[int64]*models.Folder),
	}
}

func (s *fakeFolderStore) Create(ctx context.Context, folder *models.Folder) error {
	folder.ID = s.nextID
	s.nextID++
	folder.CreatedAt = time.Now()
	folder.UpdatedAt = folder.CreatedAt
	copied := *folder
	s.folders[folder.ID] = &copied
	return nil
}

func (s *fakeFolderStore) GetByID(ctx context.Context, id, ownerID int64) (*models.Folder, error) {
	folder, ok := s.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := *folder
	return &copied, nil
}

func (s *fakeFolderStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Folder, error) {
	var out []*models.Folder
	for id := int64(0); id < s.nextID; id++ {
		folder, ok := s.folders[id]
		if ok && folder.OwnerID == ownerID {
			copied := *folder
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *fakeFolderStore) Delete(ctx context.Context, id, ownerID int64) error {
	folder, ok := s.folders[id]
	if !ok || folder.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.folders, id)
	return nil
}

// fakeAssetStore is an in-memory AssetStore with upsert tag semantics
type fakeAssetStore struct {
	nextAssetID int64
	nextTagID   int64
	assets      map[int64]*models.Asset
	tags        map[string]models.Tag // keyed owner/name
	assetTags   map[int64][]int64
	batchCalls  int
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{
		nextAssetID: 1,
		nextTagID:   1,
		assets:      make(map[int64]*models.Asset),
		tags:        make(map[string]models.Tag),
		assetTags:   make(map[int64][]int64),
	}
}

func tagKey(ownerID int64, name string) string {
	return fmt.Sprintf("%d/%s", ownerID, name)
}

func (s *fakeAssetStore) CreateWithTags(ctx context.Context, asset *models.Asset, tagNames []string) ([]models.Tag, error) {
	resolved := make([]models.Tag, 0, len(tagNames))
	seen := make(map[string]bool)
	for _, name := range tagNames {
		if seen[name] {
			continue
		}
		seen[name] = true
		key := tagKey(asset.OwnerID, name)
		tag, ok := s.tags[key]
		if !ok {
			tag = models.Tag{ID: s.nextTagID, Name: name, OwnerID: asset.OwnerID, CreatedAt: time.Now()}
			s.nextTagID++
			s.tags[key] = tag
		}
		resolved = append(resolved, tag)
	}

	asset.ID = s.nextAssetID
	s.nextAssetID++
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	copied := *asset
	s.assets[asset.ID] = &copied

	for _, tag := range resolved {
		s.assetTags[asset.ID] = append(s.assetTags[asset.ID], tag.ID)
	}

	return resolved, nil
}

func (s *fakeAssetStore) GetByID(ctx context.Context, id, ownerID int64) (*models.Asset, error) {
	asset, ok := s.assets[id]
	if !ok || asset.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	copied := *asset
	return &copied, nil
}

func (s *fakeAssetStore) List(ctx context.Context, ownerID int64, folderID *int64, tagName string) ([]*models.Asset, error) {
	var out []*models.Asset
	for id := int64(0); id < s.nextAssetID; id++ {
		asset, ok := s.assets[id]
		if !ok || asset.OwnerID != ownerID {
			continue
		}
		if folderID != nil && (asset.FolderID == nil || *asset.FolderID != *folderID) {
			continue
		}
		if tagName != "" && !s.hasTag(asset, tagName) {
			continue
		}
		copied := *asset
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeAssetStore) hasTag(asset *models.Asset, tagName string) bool {
	tag, ok := s.tags[tagKey(asset.OwnerID, tagName)]
	if !ok {
		return false
	}
	for _, id := range s.assetTags[asset.ID] {
		if id == tag.ID {
			return true
		}
	}
	return false
}

func (s *fakeAssetStore) TagsForAssets(ctx context.Context, assetIDs []int64) (map[int64][]models.Tag, error) {
	s.batchCalls++
	out := make(map[int64][]models.Tag)
	byID := make(map[int64]models.Tag)
	for _, tag := range s.tags {
		byID[tag.ID] = tag
	}
	for _, assetID := range assetIDs {
		for _, tagID := range s.assetTags[assetID] {
			out[assetID] = append(out[assetID], byID[tagID])
		}
	}
	return out, nil
}

func (s *fakeAssetStore) Delete(ctx context.Context, id, ownerID int64) error {
	asset, ok := s.assets[id]
	if !ok || asset.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.assets, id)
	delete(s.assetTags, id)
	return nil
}

// tagsForOwner counts distinct tag rows owned by a user
func (s *fakeAssetStore) tagsForOwner(ownerID int64) []models.Tag {
	var out []models.Tag
	for _, tag := range s.tags {
		if tag.OwnerID == ownerID {
			out = append(out, tag)
		}
	}
	return out
}

// fakeBlobStore is an in-memory BlobStore with injectable failures
type fakeBlobStore struct {
	nextKey    int
	objects    map[string][]byte
	failPut    bool
	failDelete bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(ctx context.Context, filename, contentType string, payload io.Reader) (string, int64, error) {
	if s.failPut {
		return "", 0, errors.New("blob backend down")
	}
	data, err := io.ReadAll(payload)
	if err != nil {
		return "", 0, err
	}
	s.nextKey++
	key := fmt.Sprintf("assets/blob-%d", s.nextKey)
	s.objects[key] = data
	return key, int64(len(data)), nil
}

func (s *fakeBlobStore) Delete(ctx context.Context, key string) error {
	if s.failDelete {
		return errors.New("blob backend down")
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeBlobStore) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "https://blobs.test/" + key, nil
}

// fakeIndex is an in-memory MetadataIndex with injectable failures
type fakeIndex struct {
	records    map[string]*models.IndexRecord
	failPut    bool
	failRemove bool
	failList   bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{records: make(map[string]*models.IndexRecord)}
}

func indexKey(ownerID, assetID int64) string {
	return fmt.Sprintf("%d/%d", ownerID, assetID)
}

func (s *fakeIndex) Put(ctx context.Context, record *models.IndexRecord) error {
	if s.failPut {
		return errors.New("index backend down")
	}
	s.records[indexKey(record.OwnerID, record.AssetID)] = record
	return nil
}

func (s *fakeIndex) Remove(ctx context.Context, ownerID, assetID int64) error {
	if s.failRemove {
		return errors.New("index backend down")
	}
	delete(s.records, indexKey(ownerID, assetID))
	return nil
}

func (s *fakeIndex) ListByOwner(ctx context.Context, ownerID int64) ([]*models.IndexRecord, error) {
	if s.failList {
		return nil, errors.New("index backend down")
	}
	var out []*models.IndexRecord
	for _, record := range s.records {
		if record.OwnerID == ownerID {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].AssetID < out[j].AssetID
	})
	return out, nil
}
