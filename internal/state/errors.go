package state

import "errors"

var (
	// ErrAllocation reports that the store could not reserve room for more entries.
	ErrAllocation = errors.New("allocation failed")
	// ErrNotInitialized is returned by Insert after Reset until Initialize runs again.
	ErrNotInitialized = errors.New("store not initialized")
)
