package inspect

import (
	"errors"
	"fmt"
)

// wavHeaderSize is the canonical RIFF/WAVE header length. Files with extra
// chunks before "data" are not handled; their byteRate field still sits at
// the canonical offset in practice for session recordings.
const wavHeaderSize = 44

// wavByteRateOffset is the little-endian byteRate field of the fmt chunk
const wavByteRateOffset = 28

// wavDurationMinutes derives the duration of a canonical WAV file from its
// byte rate: minutes = (total_bytes / byteRate) / 60.
func wavDurationMinutes(header []byte, totalBytes int64) (float64, error) {
	r := byteReader{data: header}

	if r.len() < wavHeaderSize {
		return 0, fmt.Errorf("wav header truncated: %d bytes", r.len())
	}

	magic, err := r.slice(0, 4)
	if err != nil {
		return 0, err
	}
	if string(magic) != "RIFF" {
		return 0, errors.New("missing RIFF magic")
	}

	byteRate, err := r.uint32LE(wavByteRateOffset)
	if err != nil {
		return 0, err
	}
	if byteRate == 0 {
		return 0, errors.New("wav header with zero byte rate")
	}

	seconds := float64(totalBytes) / float64(byteRate)
	return seconds / 60, nil
}
