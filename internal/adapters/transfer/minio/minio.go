package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter moves accepted recordings into the durable recordings bucket
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

	exists, err := client.BucketExists(ctx, cfg.RecordingsBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.RecordingsBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Send streams the blob into the recordings bucket, reporting progress as
// bytes are consumed. A cancelled context surfaces as ErrTransferCancelled.
func (a *Adapter) Send(ctx context.Context, blob port.Blob, target domain.TransferTarget, progress port.ProgressFunc) error {
	src, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to open staged object: %v", domain.ErrTransferFailed, err)
	}
	defer src.Close()

	reader := &progressReader{
		reader:   src,
		total:    blob.Size(),
		progress: progress,
	}

	opts := minio.PutObjectOptions{
		ContentType: blob.ContentType(),
		UserMetadata: map[string]string{
			"Recording-Id":      target.RecordingID.String(),
			"Original-Filename": blob.Name(),
		},
	}

	_, err = a.client.PutObject(ctx, a.config.RecordingsBucket, target.ObjectKey, reader, blob.Size(), opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return fmt.Errorf("%w: %v", domain.ErrTransferCancelled, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	a.logger.Info("recording stored",
		"bucket", a.config.RecordingsBucket,
		"key", target.ObjectKey,
		"size_bytes", blob.Size(),
	)
	return nil
}

// progressReader reports cumulative bytes read to the progress callback
type progressReader struct {
	reader   io.Reader
	total    int64
	sent     int64
	progress port.ProgressFunc
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.sent += int64(n)
		if r.progress != nil {
			r.progress(r.sent, r.total)
		}
	}
	return n, err
}
