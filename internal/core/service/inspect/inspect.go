package inspect

import (
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"
	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"
)

type inspectService struct {
	prober port.MediaProber
	cfg    config.InspectionConfig
	logger *slog.Logger
}

// NewInspectService creates a new inspection service
func NewInspectService(prober port.MediaProber, cfg config.InspectionConfig, logger *slog.Logger) port.Inspector {
	return &inspectService{prober: prober, cfg: cfg, logger: logger}
}

// AllowedAudioMimeTypes is a whitelist of supported audio MIME types and their
// extensions. This is deterministic and does NOT rely on OS mime databases
// (Docker-safe). A file is accepted when EITHER its declared MIME type OR its
// extension matches: browsers and OSes report inconsistent or missing MIME
// types for the same recording.
var AllowedAudioMimeTypes = map[string][]string{
	"audio/mpeg": {".mp3"},
	"audio/mp3":  {".mp3"},

	"audio/wav":      {".wav"},
	"audio/x-wav":    {".wav"},
	"audio/wave":     {".wav"},
	"audio/vnd.wave": {".wav"},

	"audio/mp4":   {".m4a", ".mp4"},
	"audio/x-m4a": {".m4a"},
	"video/mp4":   {".mp4"},

	"audio/aac": {".aac"},

	"audio/flac":   {".flac"},
	"audio/x-flac": {".flac"},

	"audio/ogg": {".ogg"},

	"audio/webm": {".webm"},
	"video/webm": {".webm"},
}

// Validate checks the declared extension, MIME type and byte length of a blob.
// It only reads blob metadata, never content, and returns its verdict as a
// value so a rejected file short-circuits before any duration work starts.
func (s *inspectService) Validate(blob port.Blob) domain.ValidationVerdict {
	if !formatAllowed(blob.Name(), blob.ContentType()) {
		return domain.ValidationVerdict{
			Accepted: false,
			Reason: fmt.Errorf("%w: name=%q content_type=%q",
				domain.ErrUnsupportedFormat, blob.Name(), blob.ContentType()),
		}
	}

	if blob.Size() < s.cfg.MinSizeBytes {
		return domain.ValidationVerdict{
			Accepted: false,
			Reason:   fmt.Errorf("%w: %d bytes (minimum %d)", domain.ErrFileTooSmall, blob.Size(), s.cfg.MinSizeBytes),
		}
	}

	if blob.Size() > s.cfg.MaxSizeBytes {
		return domain.ValidationVerdict{
			Accepted: false,
			Reason:   fmt.Errorf("%w: %d bytes (maximum %d)", domain.ErrFileTooLarge, blob.Size(), s.cfg.MaxSizeBytes),
		}
	}

	return domain.ValidationVerdict{Accepted: true}
}

func formatAllowed(filename, contentType string) bool {
	mimeType := normalizeMimeType(contentType)
	if _, ok := AllowedAudioMimeTypes[mimeType]; ok {
		return true
	}

	ext := extensionOf(filename)
	if ext == "" {
		return false
	}
	for _, exts := range AllowedAudioMimeTypes {
		for _, allowed := range exts {
			if ext == allowed {
				return true
			}
		}
	}
	return false
}

// extensionOf returns the lower-cased, dot-prefixed last extension segment
func extensionOf(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// normalizeMimeType strips parameters ("audio/mpeg; codecs=...") and case.
// An unparseable content type normalizes to "" so the extension signal alone
// decides.
func normalizeMimeType(contentType string) string {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mimeType
}
