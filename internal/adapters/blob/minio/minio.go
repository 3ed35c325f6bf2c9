package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is a staging store over a minio bucket: clients stage their raw
// recordings there and the intake service borrows byte ranges for inspection.
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.StagingBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if staging bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StagingBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create staging bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Open stats a staged object and wraps it as a Blob. name and contentType are
// what the client declared for the file; the size comes from the object
// itself.
func (a *Adapter) Open(ctx context.Context, key, name, contentType string) (port.Blob, error) {
	info, err := a.client.StatObject(ctx, a.config.StagingBucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrStagedObjectNotFound, key)
		}
		return nil, fmt.Errorf("failed to stat staged object: %w", err)
	}

	return &stagedBlob{
		adapter:     a,
		key:         key,
		name:        name,
		contentType: contentType,
		size:        info.Size,
	}, nil
}

// Remove deletes a staged object, used when an abandoned session expires
func (a *Adapter) Remove(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.StagingBucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove staged object: %w", err)
	}
	return nil
}

// stagedBlob is a read-only handle on one staged object
type stagedBlob struct {
	adapter     *Adapter
	key         string
	name        string
	contentType string
	size        int64
}

func (b *stagedBlob) Name() string {
	return b.name
}

func (b *stagedBlob) ContentType() string {
	return b.contentType
}

func (b *stagedBlob) Size() int64 {
	return b.size
}

// ReadRange fetches up to length bytes at offset with a ranged GET, so header
// inspection of a 500MiB staged file costs a few kilobytes of transfer.
func (b *stagedBlob) ReadRange(ctx context.Context, offset, length int64) ([]byte, error) {
	if length <= 0 || offset >= b.size {
		return []byte{}, nil
	}
	end := offset + length - 1
	if end > b.size-1 {
		end = b.size - 1
	}

	opts := minio.GetObjectOptions{}
	if err := opts.SetRange(offset, end); err != nil {
		return nil, fmt.Errorf("failed to set range: %w", err)
	}

	object, err := b.adapter.client.GetObject(ctx, b.adapter.config.StagingBucket, b.key, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get partial object: %w", err)
	}
	defer object.Close()

	buffer, err := io.ReadAll(io.LimitReader(object, end-offset+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read header bytes: %w", err)
	}

	return buffer, nil
}

func (b *stagedBlob) Open(ctx context.Context) (io.ReadCloser, error) {
	object, err := b.adapter.client.GetObject(ctx, b.adapter.config.StagingBucket, b.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get staged object: %w", err)
	}
	return object, nil
}
