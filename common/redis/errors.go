package redis

import "errors"

// ErrNotFound is returned when a key is absent
var ErrNotFound = errors.New("key not found")
