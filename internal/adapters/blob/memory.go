package blob

import (
	"bytes"
	"context"
	"io"
)

// Memory is an in-memory Blob, used by tests and local tooling
type Memory struct {
	name        string
	contentType string
	data        []byte
	// DeclaredSize overrides len(data) when set, so callers can model a large
	// file while only materializing its header bytes
	declaredSize int64
}

// NewMemory creates an in-memory blob over data
func NewMemory(name, contentType string, data []byte) *Memory {
	return &Memory{name: name, contentType: contentType, data: data, declaredSize: int64(len(data))}
}

// NewMemoryWithSize creates an in-memory blob that declares a size larger
// than the bytes it holds. ReadRange still bounds reads by the held bytes.
func NewMemoryWithSize(name, contentType string, data []byte, size int64) *Memory {
	return &Memory{name: name, contentType: contentType, data: data, declaredSize: size}
}

func (m *Memory) Name() string {
	return m.name
}

func (m *Memory) ContentType() string {
	return m.contentType
}

func (m *Memory) Size() int64 {
	return m.declaredSize
}

func (m *Memory) ReadRange(_ context.Context, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset >= int64(len(m.data)) {
		return []byte{}, nil
	}
	end := offset + length
	if end > int64(len(m.data)) {
		end = int64(len(m.data))
	}
	out := make([]byte, end-offset)
	copy(out, m.data[offset:end])
	return out, nil
}

func (m *Memory) Open(_ context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}
