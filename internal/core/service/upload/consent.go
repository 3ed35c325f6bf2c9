package upload

import "therassist/internal/core/domain"

// SetConsent records whether the caller explicitly acknowledged the client's
// consent to upload the recording. Consent is required before StartTransfer
// is permitted and is cleared whenever a different file is selected.
func (c *Controller) SetConsent(given bool) domain.UploadSnapshot {
	c.mu.Lock()
	if c.state != domain.UploadStateFileSelected {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	c.consent = given
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.emit(snap)
	return snap
}
