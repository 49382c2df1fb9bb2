package repository

import "errors"

// ErrNotFound is returned when a row is absent or owned by another user
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint rejects an insert
var ErrDuplicate = errors.New("duplicate")
