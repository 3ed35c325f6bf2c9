package upload

import "therassist/internal/core/domain"

// Cancel requests cancellation of the in-flight transfer. Cancellation is
// cooperative: the transfer collaborator observes its context and resolves
// with a cancelled outcome, which routes the session back to FileSelected
// with progress reset. Calling Cancel outside Uploading is a no-op.
func (c *Controller) Cancel() domain.UploadSnapshot {
	c.mu.Lock()
	if c.state != domain.UploadStateUploading {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.cancelRequested = true
	cancel := c.cancelTransfer
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return snap
}
