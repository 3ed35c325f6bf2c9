package inspect

import (
	"errors"
	"fmt"
)

// mp4ScanWindow is how much of the file head is scanned for the mvhd atom.
// Files whose moov atom sits at the end of the file (non fast-start) will not
// be found within this window; their duration is reported unavailable.
const mp4ScanWindow = 100 * 1024

var errMvhdNotFound = errors.New("mvhd atom not found in header window")

// mvhd atom layout past the 4-byte tag: version(1) flags(3), then
// creation/modification timestamps whose width depends on the version,
// then timescale and duration.
const (
	mvhdV0TimescaleOffset = 16
	mvhdV0DurationOffset  = 20
	mvhdV1TimescaleOffset = 24
	mvhdV1DurationOffset  = 28
)

// mp4DurationMinutes finds the movie header atom by a linear byte scan for
// the ASCII tag "mvhd" and reads its timescale and duration fields at the
// version-dependent fixed offsets. minutes = duration / timescale / 60.
func mp4DurationMinutes(header []byte) (float64, error) {
	r := byteReader{data: header}

	for i := 0; i+4 <= r.len(); i++ {
		if header[i] != 'm' || header[i+1] != 'v' || header[i+2] != 'h' || header[i+3] != 'd' {
			continue
		}

		version, err := r.byteAt(i + 4)
		if err != nil {
			return 0, err
		}

		var timescale uint32
		var duration uint64
		switch version {
		case 0:
			timescale, err = r.uint32BE(i + mvhdV0TimescaleOffset)
			if err != nil {
				return 0, err
			}
			d32, err := r.uint32BE(i + mvhdV0DurationOffset)
			if err != nil {
				return 0, err
			}
			duration = uint64(d32)
		case 1:
			// 64-bit creation/modification timestamps shift the fields,
			// and the duration itself widens to 64 bits
			timescale, err = r.uint32BE(i + mvhdV1TimescaleOffset)
			if err != nil {
				return 0, err
			}
			duration, err = r.uint64BE(i + mvhdV1DurationOffset)
			if err != nil {
				return 0, err
			}
		default:
			return 0, fmt.Errorf("unknown mvhd version %d", version)
		}

		if timescale == 0 {
			return 0, errors.New("mvhd with zero timescale")
		}

		return float64(duration) / float64(timescale) / 60, nil
	}

	return 0, errMvhdNotFound
}
