package models

import "time"

// Asset is the metadata row for one uploaded payload. StorageKey addresses
// exactly one object-store entry created at upload time and is never reused.
// Maps to: assets table
type Asset struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	MimeType    string    `db:"mime_type" json:"mime_type"`
	SizeBytes   int64     `db:"size_bytes" json:"size_bytes"`
	StorageKey  string    `db:"storage_key" json:"storage_key"`
	FolderID    *int64    `db:"folder_id" json:"folder_id,omitempty"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Tag is an owner-scoped label. (owner_id, name) is unique; concurrent
// creates of the same name resolve to one row via upsert.
// Maps to: tags table
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	OwnerID   int64     `db:"owner_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TagRef is the id/name pair mirrored into the secondary index
type TagRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AssetProjection is the API view of an asset: the row plus its current tag
// set and a time-limited signed URL for the stored payload.
type AssetProjection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	FolderID    *int64    `json:"folder_id,omitempty"`
	MimeType    string    `json:"mime_type"`
	SizeBytes   int64     `json:"size_bytes"`
	FileURL     string    `json:"file_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Tags        []Tag     `json:"tags"`
}

// IndexRecord is the denormalized asset projection written to the secondary
// index after the primary commit. It is eventually consistent with the
// assets table and must never be treated as authoritative.
type IndexRecord struct {
	OwnerID     int64    `json:"owner_id"`
	AssetID     int64    `json:"asset_id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	MimeType    string   `json:"mime_type"`
	SizeBytes   int64    `json:"size_bytes"`
	StorageKey  string   `json:"storage_key"`
	FolderID    *int64   `json:"folder_id,omitempty"`
	Tags        []TagRef `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
}
