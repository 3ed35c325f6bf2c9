package port

import (
	"context"
	"therassist/internal/core/domain"
)

// Inspector is the service that gates uploads: format/size validation,
// duration extraction and the duration policy check.
type Inspector interface {
	// Validate checks the declared type and size of a blob against the
	// configured allow-list and bounds. Synchronous, never reads content.
	Validate(blob Blob) domain.ValidationVerdict
	// ExtractDurationMinutes produces a best-effort play duration. It never
	// returns an error: every internal failure degrades to an estimate with
	// confidence unavailable.
	ExtractDurationMinutes(ctx context.Context, blob Blob) domain.DurationEstimate
	// CheckDuration compares an estimate against the configured minute bounds
	CheckDuration(estimate domain.DurationEstimate) domain.DurationVerdict
}

// MediaProber is the platform media-decoding primitive: it loads enough of a
// recording to report its duration. Used for small files and as a fallback
// for unrecognized formats.
type MediaProber interface {
	DurationSeconds(ctx context.Context, blob Blob) (float64, error)
}
