package upload

import (
	"therassist/internal/core/domain"

	"github.com/google/uuid"
)

// RemoveFile discards the selected file and returns the session to Idle.
// Bumping the selection token means an extraction still in flight for the
// discarded file resolves into nothing: its result no longer matches the
// active selection. A no-op while a transfer is in flight; cancel first.
func (c *Controller) RemoveFile() domain.UploadSnapshot {
	c.mu.Lock()
	if c.state == domain.UploadStateUploading {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.logger.Warn("remove file ignored while a transfer is in flight")
		return snap
	}

	c.selectionToken = uuid.New()
	c.blob = nil
	c.target = domain.TransferTarget{}
	c.state = domain.UploadStateIdle
	c.validation = domain.ValidationVerdict{}
	c.duration = domain.DurationVerdict{}
	c.consent = false
	c.bytesSent = 0
	c.bytesTotal = 0
	c.errMsg = ""

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return snap
}
