package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the configured object does not exist.
// Callers treat it as "no remote data" rather than a failure.
var ErrNotFound = errors.New("blobstore: object not found")

// Store reads and writes a single configured object in a remote object store.
// The repository mirrors its full user list through it best-effort: load once
// at initialization, overwrite wholesale after every mutation.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
