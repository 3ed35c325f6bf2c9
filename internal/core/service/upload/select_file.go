package upload

import (
	"context"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"

	"github.com/google/uuid"
)

// Select makes blob the active selection and runs format/size validation
// synchronously. A rejected file stays selected but keeps the transfer
// blocked, and no duration work is started for it. An accepted file kicks off
// duration extraction in the background; the transfer stays blocked until the
// duration verdict resolves.
//
// Selecting while a transfer is in flight is a no-op; cancel first. ctx must
// outlive the extraction, not the call: pass a session-scoped context.
func (c *Controller) Select(ctx context.Context, blob port.Blob, target domain.TransferTarget) domain.UploadSnapshot {
	c.mu.Lock()
	if c.state == domain.UploadStateUploading {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Warn("select ignored while a transfer is in flight", "file", blob.Name())
		return snap
	}

	token := uuid.New()
	c.selectionToken = token
	c.blob = blob
	c.target = target
	c.state = domain.UploadStateFileSelected
	c.consent = false
	c.bytesSent = 0
	c.bytesTotal = blob.Size()
	c.errMsg = ""
	c.duration = domain.DurationVerdict{Status: domain.DurationPending}

	c.validation = c.inspector.Validate(blob)

	snap := c.snapshotLocked()
	c.mu.Unlock()

	if snap.Validation.Accepted {
		go c.extractDuration(ctx, token, blob)
	} else {
		c.logger.Info("selected file rejected", "file", blob.Name(), "reason", snap.Validation.Reason)
	}

	c.emit(snap)
	return snap
}

// extractDuration resolves the duration verdict for one selection. The result
// is applied only while token still identifies the active selection.
func (c *Controller) extractDuration(ctx context.Context, token uuid.UUID, blob port.Blob) {
	estimate := c.inspector.ExtractDurationMinutes(ctx, blob)
	verdict := c.inspector.CheckDuration(estimate)

	c.mu.Lock()
	if token != c.selectionToken {
		c.mu.Unlock()
		c.logger.Info("discarding duration result for superseded selection", "file", blob.Name())
		return
	}
	c.duration = verdict
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if verdict.Status == domain.DurationUnverified {
		c.logger.Warn("duration could not be verified, upload stays permitted", "file", blob.Name())
	}

	c.emit(snap)
}
