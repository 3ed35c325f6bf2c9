package inspect

import (
	"fmt"
	"therassist/internal/core/domain"
)

// CheckDuration compares a duration estimate against the configured minute
// bounds. An unavailable estimate yields Unverified: the caller surfaces a
// soft warning but the upload stays permitted.
func (s *inspectService) CheckDuration(estimate domain.DurationEstimate) domain.DurationVerdict {
	if estimate.Confidence == domain.DurationUnavailable {
		return domain.DurationVerdict{Status: domain.DurationUnverified, Estimate: estimate}
	}

	switch {
	case estimate.Minutes < s.cfg.MinDurationMinutes:
		return domain.DurationVerdict{
			Status:   domain.DurationTooShort,
			Estimate: estimate,
			Reason:   fmt.Errorf("%w: %.1f minutes (minimum %.0f)", domain.ErrDurationTooShort, estimate.Minutes, s.cfg.MinDurationMinutes),
		}
	case estimate.Minutes > s.cfg.MaxDurationMinutes:
		return domain.DurationVerdict{
			Status:   domain.DurationTooLong,
			Estimate: estimate,
			Reason:   fmt.Errorf("%w: %.1f minutes (maximum %.0f)", domain.ErrDurationTooLong, estimate.Minutes, s.cfg.MaxDurationMinutes),
		}
	default:
		return domain.DurationVerdict{Status: domain.DurationAccepted, Estimate: estimate}
	}
}
