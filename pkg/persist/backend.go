// Package persist stores the editor state in a key/value backend.
//
// Values are JSON blobs. Reads of a logical entry try its current key first and
// fall back to a legacy alias; writes always target the current key.
package persist

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Backend.Get when the key is absent.
var ErrNotFound = errors.New("key not found")

// Backend is a flat key/value store.
type Backend interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) (value []byte, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) (err error)
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) (err error)
	// Close releases the backend's resources.
	Close() (err error)
}
