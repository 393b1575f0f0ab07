package storage

import "context"

// Storage uploads raw bytes under a key to object storage and returns a
// publicly resolvable URL for the stored object. Uploading to an existing
// key overwrites the previous object. Backend errors are propagated
// unmodified; retry policy belongs to the backing client configuration.
type Storage interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}
