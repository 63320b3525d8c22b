package repositories

import "errors"

// ErrNotFound is wrapped by every repository lookup that misses, so
// callers can test with errors.Is regardless of the backing store.
var ErrNotFound = errors.New("not found")
