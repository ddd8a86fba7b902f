package storage

import (
	"context"
	"io"
)

// Storage is the interface for image storage backends. Uploads arrive as
// multipart form files and are written server-side, so the contract is a
// plain save returning the public URL for the stored object.
type Storage interface {
	// Save writes the object under key and returns the URL clients use to
	// fetch it.
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)

	// Delete removes the object. Missing objects are not an error.
	Delete(ctx context.Context, key string) error
}
