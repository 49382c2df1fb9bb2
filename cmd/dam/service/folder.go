package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/assetbay/assetbay/cmd/dam/models"
	"github.com/assetbay/assetbay/cmd/dam/repository"
	"github.com/assetbay/assetbay/common/logger"
)

// FolderService maintains the per-owner folder hierarchy.
//
// The parent/child relation is only checked for ownership, not for cycles;
// deleting a folder does not cascade, so children keep a stale parent_id.
// Both are deliberate carryovers, not behaviors to patch silently.
type FolderService struct {
	folders FolderStore
	log     *logger.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folders FolderStore, log *logger.Logger) *FolderService {
	return &FolderService{
		folders: folders,
		log:     log,
	}
}

// Create validates parent ownership and inserts the folder
func (s *FolderService) Create(ctx context.Context, ownerID int64, name string, parentID *int64) (*models.Folder, error) {
	if parentID != nil {
		if _, err := s.folders.GetByID(ctx, *parentID, ownerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("parent folder %d: %w", *parentID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to check parent folder: %w", err)
		}
	}

	folder := &models.Folder{
		Name:     name,
		ParentID: parentID,
		OwnerID:  ownerID,
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.log.Info("folder created", "folder_id", folder.ID, "owner_id", ownerID, "parent_id", parentID)
	return folder, nil
}

// List returns all folders owned by the caller, unordered
func (s *FolderService) List(ctx context.Context, ownerID int64) ([]*models.Folder, error) {
	folders, err := s.folders.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Tree returns the owner's folders as a forest: roots are folders with a nil
// parent, children are grouped under their immediate parent. The whole owner
// subgraph is fetched once and assembled in memory; the output is identical
// to a per-node traversal. A child whose parent was deleted has a dangling
// parent_id and therefore appears nowhere in the forest.
func (s *FolderService) Tree(ctx context.Context, ownerID int64) ([]*models.FolderNode, error) {
	folders, err := s.folders.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	nodes := make(map[int64]*models.FolderNode, len(folders))
	for _, folder := range folders {
		nodes[folder.ID] = &models.FolderNode{
			Folder:   *folder,
			Children: []*models.FolderNode{},
		}
	}

	// Adjacency by parent_id, preserving store order within each parent
	roots := []*models.FolderNode{}
	for _, folder := range folders {
		node := nodes[folder.ID]
		if folder.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*folder.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		}
	}

	return roots, nil
}

// Delete removes a folder row. Child folders and assets that referenced the
// folder keep their stale references (documented gap, no cascade).
func (s *FolderService) Delete(ctx context.Context, ownerID, folderID int64) error {
	if err := s.folders.Delete(ctx, folderID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("folder %d: %w", folderID, ErrNotFound)
		}
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	s.log.Info("folder deleted", "folder_id", folderID, "owner_id", ownerID)
	return nil
}
