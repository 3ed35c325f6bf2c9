package inspect_test

import (
	"io"
	"log/slog"
	"testing"

	"therassist/internal/adapters/blob"
	"therassist/internal/config"
	"therassist/internal/core/domain"
	"therassist/internal/core/port"
	"therassist/internal/core/service/inspect"

	"github.com/stretchr/testify/assert"
)

var testCfg = config.InspectionConfig{
	MinSizeBytes:       5 * 1024 * 1024,
	MaxSizeBytes:       500 * 1024 * 1024,
	ProbeTierMaxBytes:  50 * 1024 * 1024,
	MinDurationMinutes: 5,
	MaxDurationMinutes: 90,
}

func newTestInspector(prober port.MediaProber) port.Inspector {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return inspect.NewInspectService(prober, testCfg, discardLogger)
}

func TestInspectService_Validate_AcceptsAllowListedFiles(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	okSize := int64(10 * 1024 * 1024)

	cases := []struct {
		name        string
		contentType string
	}{
		{"session.mp3", "audio/mpeg"},
		{"session.wav", "audio/wav"},
		{"session.m4a", "audio/mp4"},
		{"session.mp4", "video/mp4"},
		{"session.aac", "audio/aac"},
		{"session.flac", "audio/flac"},
		{"session.ogg", "audio/ogg"},
		{"session.webm", "audio/webm"},
		// MIME missing, extension carries the decision
		{"session.mp3", ""},
		// extension wrong, MIME carries the decision
		{"session.bin", "audio/mpeg"},
		// MIME with codec parameters
		{"session.webm", "audio/webm; codecs=opus"},
	}

	for _, tc := range cases {
		b := blob.NewMemoryWithSize(tc.name, tc.contentType, nil, okSize)
		verdict := inspector.Validate(b)
		assert.True(t, verdict.Accepted, "expected %q (%q) to be accepted", tc.name, tc.contentType)
		assert.NoError(t, verdict.Reason)
	}
}

func TestInspectService_Validate_RejectsUnknownFormat(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	cases := []struct {
		name        string
		contentType string
	}{
		{"notes.pdf", "application/pdf"},
		{"session.txt", "text/plain"},
		{"session", ""},
		{"archive.zip", "application/zip"},
	}

	for _, tc := range cases {
		// size within bounds: format is rejected regardless of size
		b := blob.NewMemoryWithSize(tc.name, tc.contentType, nil, 10*1024*1024)
		verdict := inspector.Validate(b)
		assert.False(t, verdict.Accepted)
		assert.ErrorIs(t, verdict.Reason, domain.ErrUnsupportedFormat)
	}
}

func TestInspectService_Validate_RejectsTooSmall(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	b := blob.NewMemoryWithSize("clip.mp3", "audio/mpeg", nil, 2*1024*1024)
	verdict := inspector.Validate(b)

	assert.False(t, verdict.Accepted)
	assert.ErrorIs(t, verdict.Reason, domain.ErrFileTooSmall)
}

func TestInspectService_Validate_RejectsTooLarge(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	b := blob.NewMemoryWithSize("marathon.wav", "audio/wav", nil, 501*1024*1024)
	verdict := inspector.Validate(b)

	assert.False(t, verdict.Accepted)
	assert.ErrorIs(t, verdict.Reason, domain.ErrFileTooLarge)
}

func TestInspectService_Validate_BoundsAreInclusive(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	atMin := blob.NewMemoryWithSize("a.mp3", "audio/mpeg", nil, testCfg.MinSizeBytes)
	assert.True(t, inspector.Validate(atMin).Accepted)

	atMax := blob.NewMemoryWithSize("b.mp3", "audio/mpeg", nil, testCfg.MaxSizeBytes)
	assert.True(t, inspector.Validate(atMax).Accepted)
}
