package ffprobe

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"therassist/internal/adapters/blob"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolCopiesBlobAndKeepsExtension(t *testing.T) {
	p := NewProber(slog.New(slog.NewTextHandler(io.Discard, nil)))
	data := bytes.Repeat([]byte{0xAB}, 1024)
	b := blob.NewMemory("session.mp3", "audio/mpeg", data)

	path, err := p.spool(context.Background(), b)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Regexp(t, `\.mp3$`, path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestSanitizedExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"session.mp3", ".mp3"},
		{"archive.recording.m4a", ".m4a"},
		{"noextension", ""},
		{"weird.mp3?x=1", ""},
		{"toolong.superlongext", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizedExt(tt.name), tt.name)
	}
}
