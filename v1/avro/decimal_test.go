package avro

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigIntBytes(t *testing.T) {
	tests := []struct {
		value int64
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0xff}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
		{255, []byte{0x00, 0xff}},
		{256, []byte{0x01, 0x00}},
		{-256, []byte{0xff, 0x00}},
		{1230, []byte{0x04, 0xce}},
		{-150, []byte{0xff, 0x6a}},
		{-32768, []byte{0x80, 0x00}},
	}

	for _, tt := range tests {
		n := big.NewInt(tt.value)
		assert.Equal(t, tt.bytes, bigIntToBytes(n), "encode %d", tt.value)
		assert.Equal(t, 0, bytesToBigInt(tt.bytes).Cmp(n), "decode %d", tt.value)
	}
}

func TestBigIntBytes_Large(t *testing.T) {
	n, ok := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.True(t, ok)
	assert.Equal(t, 0, bytesToBigInt(bigIntToBytes(n)).Cmp(n))
}

func TestSignExtend(t *testing.T) {
	out, ok := signExtend([]byte{0x80}, 4)
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0x80}, out)

	out, ok = signExtend([]byte{0x04, 0xce}, 4)
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0x00, 0x04, 0xce}, out)

	_, ok = signExtend([]byte{0x01, 0x02, 0x03}, 2)
	assert.False(t, ok)
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		unscaled int64
		scale    int
		want     string
	}{
		{1230, 2, "12.30"},
		{123, 1, "12.3"},
		{5, 3, "0.005"},
		{-5, 1, "-0.5"},
		{0, 2, "0.00"},
		{-150, 2, "-1.50"},
		{42, 0, "42"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDecimal(big.NewInt(tt.unscaled), tt.scale))
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		text     string
		unscaled int64
		scale    int
	}{
		{"12.3", 123, 1},
		{"12.30", 123, 1},
		{"12.334", 12334, 3},
		{"-0.5", -5, 1},
		{"42", 42, 0},
		{"1.5e2", 15, -1},
		{"1.5E-2", 15, 3},
		{"0.000", 0, 0},
	}

	for _, tt := range tests {
		unscaled, scale, err := parseDecimal(tt.text)
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.unscaled, unscaled.Int64(), tt.text)
		assert.Equal(t, tt.scale, scale, tt.text)
	}

	for _, bad := range []string{"", "abc", "1.2.3", "1e", "--1", "."} {
		_, _, err := parseDecimal(bad)
		assert.Error(t, err, bad)
	}
}

func TestRescale(t *testing.T) {
	out, ok := rescale(big.NewInt(123), 1, 2)
	require.True(t, ok)
	assert.Equal(t, int64(1230), out.Int64())

	_, ok = rescale(big.NewInt(12334), 3, 1)
	assert.False(t, ok)

	assert.True(t, fitsPrecision(big.NewInt(99999), 5))
	assert.False(t, fitsPrecision(big.NewInt(-100000), 5))
}
