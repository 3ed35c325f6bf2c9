package port

import (
	"context"
	"therassist/internal/core/domain"
)

// ProgressFunc receives transfer progress as it arrives. sent is the number
// of bytes transferred so far, total the byte length of the blob.
type ProgressFunc func(sent, total int64)

// Transfer is the injected transfer collaborator. Send moves the blob to the
// target, reporting progress through the callback. Cancellation is
// cooperative: implementations observe ctx and resolve with an error matching
// domain.ErrTransferCancelled (or context.Canceled) instead of a generic
// failure, so the caller can tell a deliberate cancel from an error.
type Transfer interface {
	Send(ctx context.Context, blob Blob, target domain.TransferTarget, progress ProgressFunc) error
}
