package avro

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeader(t *testing.T) {
	id, offset, err := ReadHeader([]byte{0x00, 0x00, 0x01, 0x86, 0xC5, 0x02, 0x04})
	require.NoError(t, err)
	assert.Equal(t, int32(100037), id)
	assert.Equal(t, 5, offset)
}

func TestWriteHeader(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x86, 0xC5}, WriteHeader(100037))
}

func TestHeaderRoundTrip(t *testing.T) {
	for _, id := range []int32{0, 1, -1, 100037, -100037, math.MaxInt32, math.MinInt32} {
		record := append(WriteHeader(id), 0x00)
		got, offset, err := ReadHeader(record)
		require.NoError(t, err)
		assert.Equal(t, id, got)
		assert.Equal(t, HeaderSize, offset)
	}
}

func TestReadHeader_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "header only", data: []byte{0x00, 0x00, 0x00, 0x00, 0x01}},
		{name: "wrong magic byte", data: []byte{0x01, 0x00, 0x00, 0x00, 0x01, 0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadHeader(tt.data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidHeader))
			assert.True(t, IsInvalidHeader(err))
			assert.Equal(t, "invalid_header", Kind(err))
		})
	}
}
