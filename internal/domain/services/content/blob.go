package content

import (
	"context"
	"io"
)

// BlobStore holds uploaded document bytes outside the record store
type BlobStore interface {
	// Put stores the content under a fresh key and returns the key and its public URL
	Put(ctx context.Context, filename string, r io.Reader) (key, url string, err error)

	// Delete releases a blob; a key that is already gone is not an error
	Delete(ctx context.Context, key string) error
}
