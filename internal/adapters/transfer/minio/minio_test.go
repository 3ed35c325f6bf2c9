package minio

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressReaderReportsCumulativeBytes(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 1000)

	var reports []int64
	r := &progressReader{
		reader: bytes.NewReader(data),
		total:  int64(len(data)),
		progress: func(sent, total int64) {
			assert.Equal(t, int64(len(data)), total)
			reports = append(reports, sent)
		},
	}

	buf := make([]byte, 256)
	var read int
	for {
		n, err := r.Read(buf)
		read += n
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}

	assert.Equal(t, len(data), read)
	require.NotEmpty(t, reports)
	assert.Equal(t, int64(len(data)), reports[len(reports)-1])
	for i := 1; i < len(reports); i++ {
		assert.GreaterOrEqual(t, reports[i], reports[i-1])
	}
}
