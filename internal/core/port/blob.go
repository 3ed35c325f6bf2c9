package port

import (
	"context"
	"io"
)

// Blob is a named, typed, sized, immutable byte source selected for upload.
// Name and ContentType are what the client declared, not what the bytes
// contain. Implementations never mutate the underlying data.
type Blob interface {
	// Name returns the declared file name, extension included
	Name() string
	// ContentType returns the declared MIME type, possibly empty
	ContentType() string
	// Size returns the total byte length
	Size() int64
	// ReadRange reads up to length bytes starting at offset. It returns fewer
	// bytes when the range extends past the end of the blob.
	ReadRange(ctx context.Context, offset, length int64) ([]byte, error)
	// Open returns a reader over the full content
	Open(ctx context.Context) (io.ReadCloser, error)
}

// StagingStore is an interface to open and discard staged recording objects
type StagingStore interface {
	Open(ctx context.Context, key, name, contentType string) (Blob, error)
	Remove(ctx context.Context, key string) error
}
