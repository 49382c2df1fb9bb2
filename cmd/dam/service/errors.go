package service

import "errors"

// Failure taxonomy for the asset/folder/auth services. Handlers map these to
// HTTP statuses; everything else surfaces as an internal error.
var (
	// ErrNotFound: referenced folder or asset absent, or owned by another user
	ErrNotFound = errors.New("not found")

	// ErrConflict: duplicate registration email
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized: missing or invalid credential
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStorageWrite: the object store rejected an upload; no metadata row
	// exists when this is returned
	ErrStorageWrite = errors.New("object store write failed")

	// ErrStorageDelete: the object store rejected a delete; the metadata row
	// is deliberately retained when this is returned
	ErrStorageDelete = errors.New("object store delete failed")
)
