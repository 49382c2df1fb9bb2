package models

import "time"

// Folder is a node in a per-owner hierarchy. ParentID is nil for roots.
// Deleting a folder does not cascade: children keep their stale ParentID.
// Maps to: folders table
type Folder struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ParentID  *int64    `db:"parent_id" json:"parent_id,omitempty"`
	OwnerID   int64     `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// FolderNode is a folder with its direct children attached.
// Children is always a slice, never nil, so empty nodes serialize as [].
type FolderNode struct {
	Folder
	Children []*FolderNode `json:"children"`
}
