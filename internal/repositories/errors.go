package repositories

import "errors"

// ErrNotFound is returned when a requested row does not exist. Repositories
// wrap it with the entity name so callers can use errors.Is while handlers
// keep a readable message.
var ErrNotFound = errors.New("not found")
