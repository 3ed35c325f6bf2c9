package inspect

import (
	"errors"
	"fmt"
)

// mp3ScanWindow is how much of the file head is read to find the first audio
// frame. Large enough to clear typical ID3v2 tags with embedded artwork.
const mp3ScanWindow = 128 * 1024

// mp3BitrateKbps is the standard MPEG-1 Layer III bitrate table, indexed by
// the bitrate-index nibble of a frame header. Index 0 is "free" bitrate and
// index 15 is invalid; both are unusable for a CBR estimate.
var mp3BitrateKbps = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}

// mp3SampleRateHz is the MPEG-1 sample-rate table; index 3 is reserved.
var mp3SampleRateHz = [4]int{44100, 48000, 32000, 0}

var errNoMP3Frame = errors.New("no usable mpeg frame header found")

// mp3DurationMinutes estimates the play duration of an MP3 from its first
// audio frame header, assuming constant bitrate across the whole file:
// seconds = total_bytes * 8 / (bitrate_kbps * 1000). VBR files come out with
// a systematic error, which is accepted.
//
// Only MPEG version 1, Layer III frames are decoded. Anything else found at
// the first frame sync makes the estimate unavailable rather than guessing
// from tables this parser does not carry.
func mp3DurationMinutes(header []byte, totalBytes int64) (float64, error) {
	r := byteReader{data: header}

	offset := 0
	if tag, err := r.slice(0, 3); err == nil && string(tag) == "ID3" {
		size, err := synchsafeSize(r)
		if err != nil {
			return 0, err
		}
		// tag header is 10 bytes, the synchsafe size excludes it
		offset = size + 10
	}

	for i := offset; i+2 < r.len(); i++ {
		b0, _ := r.byteAt(i)
		b1, err := r.byteAt(i + 1)
		if err != nil {
			break
		}
		if b0 != 0xFF || b1&0xE0 != 0xE0 {
			continue
		}

		// frame sync found; decode or give up, do not keep scanning
		version := (b1 >> 3) & 0x03
		layer := (b1 >> 1) & 0x03
		if version != 0x03 || layer != 0x01 {
			return 0, fmt.Errorf("unsupported mpeg frame: version bits %#x layer bits %#x", version, layer)
		}

		b2, err := r.byteAt(i + 2)
		if err != nil {
			return 0, err
		}
		bitrateKbps := mp3BitrateKbps[b2>>4]
		sampleRate := mp3SampleRateHz[(b2>>2)&0x03]
		if bitrateKbps == 0 || sampleRate == 0 {
			return 0, fmt.Errorf("frame header with unusable bitrate/sample-rate fields: %#x", b2)
		}

		seconds := float64(totalBytes*8) / float64(bitrateKbps*1000)
		return seconds / 60, nil
	}

	return 0, errNoMP3Frame
}

// synchsafeSize decodes the ID3v2 tag size: a 28-bit integer spread over the
// four bytes at offsets 6..9, using only the low 7 bits of each byte.
func synchsafeSize(r byteReader) (int, error) {
	b, err := r.slice(6, 4)
	if err != nil {
		return 0, err
	}
	size := int(b[0]&0x7F)<<21 |
		int(b[1]&0x7F)<<14 |
		int(b[2]&0x7F)<<7 |
		int(b[3]&0x7F)
	return size, nil
}
