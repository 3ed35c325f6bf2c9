package ffprobe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"therassist/internal/core/port"
)

// Prober measures media duration by running ffprobe against a local spool of
// the blob. It backs the small-file tier of duration extraction.
type Prober struct {
	logger *slog.Logger
}

func NewProber(logger *slog.Logger) *Prober {
	return &Prober{logger: logger}
}

// DurationSeconds spools the blob to a temp file and asks ffprobe for the
// container duration.
func (p *Prober) DurationSeconds(ctx context.Context, blob port.Blob) (float64, error) {
	path, err := p.spool(ctx, blob)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			p.logger.Warn("failed to remove probe spool file", "path", path, "error", err)
		}
	}()

	// ffprobe flags:
	// -v error: Hide all logs except actual errors
	// -show_entries format=duration: Specifically request the container duration
	// -of default=noprint_wrappers=1:nokey=1: Output only the raw value
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := exec.CommandContext(ctx, "ffprobe", args...).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %v", err)
	}

	durationStr := strings.TrimSpace(string(out))
	seconds, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration '%s': %v", durationStr, err)
	}

	return seconds, nil
}

func (p *Prober) spool(ctx context.Context, blob port.Blob) (string, error) {
	src, err := blob.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to open blob for probing: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "probe-*"+sanitizedExt(blob.Name()))
	if err != nil {
		return "", fmt.Errorf("failed to create probe spool file: %w", err)
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to spool blob for probing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to finalize probe spool file: %w", err)
	}

	return tmp.Name(), nil
}

// sanitizedExt keeps the original extension so ffprobe can use it as a format
// hint, dropping anything that does not look like a short plain suffix.
func sanitizedExt(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return ""
	}
	ext := name[dot:]
	if len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ""
		}
	}
	return ext
}
