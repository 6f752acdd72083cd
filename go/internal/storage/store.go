package storage

import (
	"context"
	"errors"
)

var (
	// ErrStorageUnavailable means the backing store cannot be reached at
	// all (missing directory, closed database). Load paths treat this as
	// fatal; corrupt-but-present data is not.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageWriteFailure wraps a failed document write
	ErrStorageWriteFailure = errors.New("storage write failure")

	// ErrNotManualRoster means a roster edit was attempted on an imported
	// league. Imported rosters are read-only until the next import.
	ErrNotManualRoster = errors.New("can only edit manual rosters")
)

// Store persists the user-data document as an opaque blob. Implementations
// return found=false when no document has ever been written; a present but
// unreadable document is the Repository's problem, not the Store's.
type Store interface {
	Load(ctx context.Context) (data []byte, found bool, err error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
