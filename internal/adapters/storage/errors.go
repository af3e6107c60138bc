package storage

import "errors"

// ErrVersionConflict is returned when a Save carries a stale version token,
// meaning another writer updated the record since it was read. Callers
// surface this instead of silently overwriting the other writer's fields.
var ErrVersionConflict = errors.New("record was modified by another writer")
