package upload

import (
	"context"
	"errors"
	"fmt"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/google/uuid"
)

// StartTransfer begins moving the selected file to its target. It is only
// permitted when a file is selected, validation accepted it, the duration
// verdict resolved without a hard rejection, and consent was explicitly
// given. Any violated precondition makes the call a no-op: the caller's
// transfer control should have been disabled, and a disabled control is not
// an error.
func (c *Controller) StartTransfer(ctx context.Context) domain.UploadSnapshot {
	c.mu.Lock()

	if c.state != domain.UploadStateFileSelected ||
		!c.validation.Accepted ||
		c.duration.Blocking() ||
		!c.consent {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Warn("start transfer ignored",
			"state", snap.State,
			"validation_accepted", snap.Validation.Accepted,
			"duration_status", snap.Duration.Status,
			"consent", snap.ConsentGiven,
		)
		return snap
	}

	c.state = domain.UploadStateUploading
	c.cancelRequested = false
	c.bytesSent = 0
	c.errMsg = ""

	transferCtx, cancel := context.WithCancel(ctx)
	c.cancelTransfer = cancel

	token := c.selectionToken
	blob := c.blob
	target := c.target

	snap := c.snapshotLocked()
	c.mu.Unlock()

	go c.runTransfer(transferCtx, token, blob, target)

	c.emit(snap)
	return snap
}

func (c *Controller) runTransfer(ctx context.Context, token uuid.UUID, blob port.Blob, target domain.TransferTarget) {
	// the transfer collaborator is the one place an unexpected panic may come
	// from; convert it to a retryable transfer failure
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: unexpected failure: %v", domain.ErrTransferFailed, r)
			}
		}()
		return c.transfer.Send(ctx, blob, target, func(sent, total int64) {
			c.applyProgress(token, sent, total)
		})
	}()

	c.mu.Lock()
	if token != c.selectionToken || c.state != domain.UploadStateUploading {
		c.mu.Unlock()
		return
	}
	c.cancelTransfer = nil

	switch {
	case c.cancelRequested || errors.Is(err, domain.ErrTransferCancelled) || errors.Is(err, context.Canceled):
		// deliberate cancel: back to the selected file, progress reset, no error
		c.state = domain.UploadStateFileSelected
		c.cancelRequested = false
		c.bytesSent = 0
		c.errMsg = ""
	case err != nil:
		c.state = domain.UploadStateError
		c.errMsg = err.Error()
	default:
		c.state = domain.UploadStateSuccess
		c.bytesSent = c.bytesTotal
	}

	snap := c.snapshotLocked()
	c.mu.Unlock()

	switch snap.State {
	case domain.UploadStateSuccess:
		c.logger.Info("transfer completed", "file", blob.Name(), "bytes", snap.BytesTotal)
	case domain.UploadStateError:
		c.logger.Error("transfer failed", "file", blob.Name(), "error", snap.ErrorMessage)
	default:
		c.logger.Info("transfer cancelled", "file", blob.Name())
	}

	c.emit(snap)
}

// applyProgress relays a progress notification from the transfer. Updates for
// a superseded selection, a session no longer uploading, or going backwards
// are dropped: bytesSent is monotonically non-decreasing until terminal.
func (c *Controller) applyProgress(token uuid.UUID, sent, total int64) {
	c.mu.Lock()
	if token != c.selectionToken || c.state != domain.UploadStateUploading || sent < c.bytesSent {
		c.mu.Unlock()
		return
	}
	c.bytesSent = sent
	if total > 0 {
		c.bytesTotal = total
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
}
