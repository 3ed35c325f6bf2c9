package inspect_test

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"

	"therassist/internal/adapters/blob"
	"therassist/internal/core/domain"
	"therassist/internal/core/service/inspect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// largeSize puts a blob into the header-parsing tier
const largeSize = 100 * 1024 * 1024

// wavHeader builds a canonical 44-byte RIFF/WAVE header with the given byte rate
func wavHeader(byteRate uint32) []byte {
	h := make([]byte, 44)
	copy(h[0:4], "RIFF")
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[28:32], byteRate)
	copy(h[36:40], "data")
	return h
}

// mp3Header builds an ID3v2 tag of tagSize payload bytes followed by one
// MPEG-1 Layer III frame header with the given bitrate index
func mp3Header(tagSize int, bitrateIndex byte) []byte {
	h := make([]byte, 0, 10+tagSize+4)
	h = append(h, 'I', 'D', '3', 0x04, 0x00, 0x00)
	h = append(h,
		byte(tagSize>>21)&0x7F,
		byte(tagSize>>14)&0x7F,
		byte(tagSize>>7)&0x7F,
		byte(tagSize)&0x7F,
	)
	h = append(h, make([]byte, tagSize)...)
	// 0xFB: sync tail + MPEG-1 + Layer III; sample-rate index 0 (44100)
	h = append(h, 0xFF, 0xFB, bitrateIndex<<4, 0x00)
	return h
}

// mvhdHeader places an mvhd atom after some leading bytes
func mvhdHeader(lead int, version byte, timescale uint32, duration uint64) []byte {
	h := make([]byte, lead, lead+40)
	h = append(h, 'm', 'v', 'h', 'd')
	h = append(h, version, 0, 0, 0)
	if version == 1 {
		h = append(h, make([]byte, 16)...) // 64-bit creation + modification
		h = binary.BigEndian.AppendUint32(h, timescale)
		h = binary.BigEndian.AppendUint64(h, duration)
	} else {
		h = append(h, make([]byte, 8)...) // 32-bit creation + modification
		h = binary.BigEndian.AppendUint32(h, timescale)
		h = binary.BigEndian.AppendUint32(h, uint32(duration))
	}
	return h
}

func TestExtractDuration_WAV_CanonicalHeader(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	byteRate := uint32(176400) // 44.1kHz stereo 16-bit
	b := blob.NewMemoryWithSize("session.wav", "audio/wav", wavHeader(byteRate), largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	want := (float64(largeSize) / float64(byteRate)) / 60
	assert.InDelta(t, want, est.Minutes, 0.001)
}

func TestExtractDuration_WAV_MissingRIFFMagic(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	header := wavHeader(176400)
	copy(header[0:4], "RIFX")
	b := blob.NewMemoryWithSize("session.wav", "audio/wav", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	assert.Equal(t, domain.DurationUnavailable, est.Confidence)
}

func TestExtractDuration_MP3_ConstantBitrate(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	// bitrate index 9 = 128 kbps in the MPEG-1 Layer III table
	b := blob.NewMemoryWithSize("session.mp3", "audio/mpeg", mp3Header(256, 9), largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	want := (float64(largeSize) * 8 / (128 * 1000)) / 60
	assert.InDelta(t, want, est.Minutes, 0.001)
}

func TestExtractDuration_MP3_NoID3Tag(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	// frame sync straight at offset 0, 320 kbps (index 14)
	header := []byte{0xFF, 0xFB, 0xE0, 0x00}
	b := blob.NewMemoryWithSize("session.mp3", "audio/mpeg", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	want := (float64(largeSize) * 8 / (320 * 1000)) / 60
	assert.InDelta(t, want, est.Minutes, 0.001)
}

func TestExtractDuration_MP3_NonMPEG1Layer3Frame(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	// 0xF3: MPEG-2 version bits; only MPEG-1 Layer III is decoded
	header := []byte{0xFF, 0xF3, 0x90, 0x00}
	b := blob.NewMemoryWithSize("session.mp3", "audio/mpeg", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	assert.Equal(t, domain.DurationUnavailable, est.Confidence)
}

func TestExtractDuration_MP3_FreeBitrateIndex(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	b := blob.NewMemoryWithSize("session.mp3", "audio/mpeg", mp3Header(0, 0), largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	assert.Equal(t, domain.DurationUnavailable, est.Confidence)
}

func TestExtractDuration_MP4_MvhdVersion0(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	// 30 minutes at timescale 600
	header := mvhdHeader(512, 0, 600, 600*60*30)
	b := blob.NewMemoryWithSize("session.m4a", "audio/mp4", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	assert.InDelta(t, 30.0, est.Minutes, 0.001)
}

func TestExtractDuration_MP4_MvhdVersion1(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	header := mvhdHeader(64, 1, 1000, 1000*60*45)
	b := blob.NewMemoryWithSize("session.mp4", "video/mp4", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	assert.InDelta(t, 45.0, est.Minutes, 0.001)
}

func TestExtractDuration_MP4_MvhdBeyondWindow(t *testing.T) {
	inspector := newTestInspector(inspect.NewMockMediaProber())

	// moov at the end of the file, nothing parseable in the first 100KiB
	header := make([]byte, 100*1024)
	b := blob.NewMemoryWithSize("session.mp4", "video/mp4", header, largeSize)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	assert.Equal(t, domain.DurationUnavailable, est.Confidence)
}

func TestExtractDuration_SmallTier_DelegatesToProber(t *testing.T) {
	prober := inspect.NewMockMediaProber()
	inspector := newTestInspector(prober)

	b := blob.NewMemoryWithSize("session.mp3", "audio/mpeg", nil, 10*1024*1024)
	prober.On("DurationSeconds", mock.Anything, b).Return(600.0, nil)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	assert.InDelta(t, 10.0, est.Minutes, 0.001)
	prober.AssertExpectations(t)
}

func TestExtractDuration_SmallTier_ProberErrorDegrades(t *testing.T) {
	prober := inspect.NewMockMediaProber()
	inspector := newTestInspector(prober)

	b := blob.NewMemoryWithSize("session.ogg", "audio/ogg", nil, 10*1024*1024)
	prober.On("DurationSeconds", mock.Anything, b).Return(0.0, errors.New("decode failed"))

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	assert.Equal(t, domain.DurationUnavailable, est.Confidence)
}

func TestExtractDuration_LargeTier_UnknownExtensionFallsBackToProber(t *testing.T) {
	prober := inspect.NewMockMediaProber()
	inspector := newTestInspector(prober)

	b := blob.NewMemoryWithSize("session.flac", "audio/flac", nil, largeSize)
	prober.On("DurationSeconds", mock.Anything, b).Return(1800.0, nil)

	est := inspector.ExtractDurationMinutes(context.Background(), b)

	require.Equal(t, domain.DurationMeasured, est.Confidence)
	assert.InDelta(t, 30.0, est.Minutes, 0.001)
	prober.AssertExpectations(t)
}

func TestExtractDuration_NeverFailsOnGarbage(t *testing.T) {
	prober := inspect.NewMockMediaProber()
	prober.On("DurationSeconds", mock.Anything, mock.Anything).Return(0.0, errors.New("not media"))
	inspector := newTestInspector(prober)

	// noise without a single frame-sync byte
	noise := make([]byte, 200*1024)
	for i := range noise {
		noise[i] = byte(i % 0x7F)
	}
	// all-sync noise: every position matches the sync pattern but decodes to
	// MPEG-1 Layer I, which this parser does not support
	allFF := make([]byte, 4096)
	for i := range allFF {
		allFF[i] = 0xFF
	}

	cases := []struct {
		name string
		data []byte
		size int64
	}{
		{"empty.mp3", nil, 0},
		{"empty.wav", nil, 0},
		{"garbage.mp3", noise, largeSize},
		{"garbage.wav", noise, largeSize},
		{"garbage.mp4", noise, largeSize},
		{"garbage.m4a", noise, largeSize},
		{"sync-noise.mp3", allFF, largeSize},
		{"truncated.wav", wavHeader(176400)[:20], largeSize},
		{"truncated.mp3", []byte("ID3"), largeSize},
	}

	for _, tc := range cases {
		b := blob.NewMemoryWithSize(tc.name, "", tc.data, tc.size)
		assert.NotPanics(t, func() {
			est := inspector.ExtractDurationMinutes(context.Background(), b)
			assert.Equal(t, domain.DurationUnavailable, est.Confidence, "file %s", tc.name)
		})
	}
}
