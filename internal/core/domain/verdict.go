package domain

// ValidationVerdict is the outcome of the format and size check on a selected
// file. It is a value, never an exception: Reason carries one of the sentinel
// errors (ErrUnsupportedFormat, ErrFileTooSmall, ErrFileTooLarge) when the
// file is rejected and is nil otherwise.
type ValidationVerdict struct {
	Accepted bool
	Reason   error
}

// DurationConfidence tells the caller how trustworthy a duration estimate is
type DurationConfidence string

const (
	// DurationMeasured means the duration was read from the media itself
	DurationMeasured DurationConfidence = "measured"
	// DurationUnavailable means extraction failed; warn but do not hard-block
	DurationUnavailable DurationConfidence = "unavailable"
)

// DurationEstimate is a best-effort play duration of a selected recording
type DurationEstimate struct {
	Minutes    float64
	Confidence DurationConfidence
}

// DurationStatus is the policy outcome over a duration estimate
type DurationStatus string

const (
	// DurationPending means extraction has not resolved yet; transfer stays disabled
	DurationPending DurationStatus = "pending"
	// DurationAccepted means the measured duration is within policy bounds
	DurationAccepted DurationStatus = "accepted"
	// DurationTooShort means the recording is below the policy floor
	DurationTooShort DurationStatus = "too_short"
	// DurationTooLong means the recording is above the policy ceiling
	DurationTooLong DurationStatus = "too_long"
	// DurationUnverified means the duration could not be measured; transfer is
	// still permitted with a displayed warning
	DurationUnverified DurationStatus = "unverified"
)

// DurationVerdict pairs the policy outcome with the estimate it was derived
// from. Reason is ErrDurationTooShort or ErrDurationTooLong on rejection.
type DurationVerdict struct {
	Status   DurationStatus
	Estimate DurationEstimate
	Reason   error
}

// Blocking reports whether this verdict keeps the transfer disabled
func (v DurationVerdict) Blocking() bool {
	return v.Status == DurationPending || v.Status == DurationTooShort || v.Status == DurationTooLong
}
