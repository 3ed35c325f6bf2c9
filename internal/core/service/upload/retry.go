package upload

import "therassist/internal/core/domain"

// Retry re-arms the same already-selected, already-validated file after a
// transfer failure. Validation and duration verdicts are still considered
// valid: only the transfer failed, so nothing is re-checked. A no-op outside
// the Error state.
func (c *Controller) Retry() domain.UploadSnapshot {
	c.mu.Lock()
	if c.state != domain.UploadStateError {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.state = domain.UploadStateFileSelected
	c.errMsg = ""
	c.bytesSent = 0

	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return snap
}
