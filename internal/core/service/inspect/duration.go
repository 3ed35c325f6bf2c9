package inspect

import (
	"context"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"
)

// ExtractDurationMinutes produces a best-effort play duration for a selected
// recording. Blobs below the probe tier threshold are handed to the media
// prober; larger blobs have their container headers parsed directly so the
// prober never has to chew through hundreds of megabytes. Unrecognized
// extensions fall back to the prober regardless of size.
//
// This method never returns an error and never panics: every failure,
// including malformed or truncated headers and garbage bytes, degrades to a
// DurationUnavailable estimate.
func (s *inspectService) ExtractDurationMinutes(ctx context.Context, blob port.Blob) (estimate domain.DurationEstimate) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("duration extraction panicked", "file", blob.Name(), "panic", r)
			estimate = unavailable()
		}
	}()

	if blob.Size() < s.cfg.ProbeTierMaxBytes {
		return s.probeDuration(ctx, blob)
	}

	switch extensionOf(blob.Name()) {
	case ".mp3":
		return s.parsedDuration(ctx, blob, mp3ScanWindow, func(header []byte) (float64, error) {
			return mp3DurationMinutes(header, blob.Size())
		})
	case ".mp4", ".m4a":
		return s.parsedDuration(ctx, blob, mp4ScanWindow, func(header []byte) (float64, error) {
			return mp4DurationMinutes(header)
		})
	case ".wav":
		return s.parsedDuration(ctx, blob, wavHeaderSize, func(header []byte) (float64, error) {
			return wavDurationMinutes(header, blob.Size())
		})
	default:
		return s.probeDuration(ctx, blob)
	}
}

// parsedDuration reads the blob's header window and runs a format-specific
// parser over it, degrading any failure to an unavailable estimate.
func (s *inspectService) parsedDuration(ctx context.Context, blob port.Blob, window int64, parse func(header []byte) (float64, error)) domain.DurationEstimate {
	header, err := blob.ReadRange(ctx, 0, window)
	if err != nil {
		s.logger.Warn("failed to read header bytes", "file", blob.Name(), "error", err)
		return unavailable()
	}

	minutes, err := parse(header)
	if err != nil {
		s.logger.Warn("header parse failed, duration unavailable", "file", blob.Name(), "error", err)
		return unavailable()
	}

	return domain.DurationEstimate{Minutes: minutes, Confidence: domain.DurationMeasured}
}

func (s *inspectService) probeDuration(ctx context.Context, blob port.Blob) domain.DurationEstimate {
	seconds, err := s.prober.DurationSeconds(ctx, blob)
	if err != nil {
		s.logger.Warn("media probe failed, duration unavailable", "file", blob.Name(), "error", err)
		return unavailable()
	}
	return domain.DurationEstimate{Minutes: seconds / 60, Confidence: domain.DurationMeasured}
}

func unavailable() domain.DurationEstimate {
	return domain.DurationEstimate{Confidence: domain.DurationUnavailable}
}
