package inspect

import (
	"encoding/binary"
	"fmt"
)

// byteReader is a bounds-checked view over a header window. Every read
// validates its offset so malformed or truncated headers surface as errors
// instead of panics.
type byteReader struct {
	data []byte
}

func (r byteReader) len() int {
	return len(r.data)
}

func (r byteReader) byteAt(off int) (byte, error) {
	if off < 0 || off >= len(r.data) {
		return 0, fmt.Errorf("read byte at %d: out of range (len %d)", off, len(r.data))
	}
	return r.data[off], nil
}

func (r byteReader) slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off+n > len(r.data) {
		return nil, fmt.Errorf("read %d bytes at %d: out of range (len %d)", n, off, len(r.data))
	}
	return r.data[off : off+n], nil
}

func (r byteReader) uint32BE(off int) (uint32, error) {
	b, err := r.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r byteReader) uint32LE(off int) (uint32, error) {
	b, err := r.slice(off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r byteReader) uint64BE(off int) (uint64, error) {
	b, err := r.slice(off, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
