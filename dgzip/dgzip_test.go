package dgzip

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	big := make([]byte, 2<<20)
	_, err := rng.Read(big)
	require.NoError(t, err)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"small", []byte("hello, gzip")},
		{"repetitive", bytes.Repeat([]byte("abcd"), 10_000)},
		{"large random", big},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed, err := Compress(tt.data)
			require.NoError(t, err)

			got, err := Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
		})
	}
}

func TestCompressDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("deterministic output please "), 1000)
	a, err := Compress(data)
	require.NoError(t, err)
	b, err := Compress(data)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompressHeaderBytes(t *testing.T) {
	out, err := Compress([]byte("x"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(out), headerSize+trailerSize)

	assert.Equal(t, byte(magic1), out[0])
	assert.Equal(t, byte(magic2), out[1])
	assert.Equal(t, byte(methodDeflate), out[2])
	assert.Equal(t, byte(0), out[3], "FLG must be zero")
	assert.Equal(t, []byte{0, 0, 0, 0}, out[4:8], "MTIME must be zero")
	assert.Equal(t, byte(0), out[8], "XFL must be zero")
	assert.Equal(t, byte(osUnknown), out[9])
}

func TestCompressEmptyIsValidStream(t *testing.T) {
	out, err := Compress(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.True(t, IsGzip(out))

	got, err := Decompress(out)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecompressTruncated(t *testing.T) {
	compressed, err := Compress(bytes.Repeat([]byte("payload"), 1000))
	require.NoError(t, err)

	for _, cut := range []int{1, 5, headerSize, len(compressed) / 2, len(compressed) - 1} {
		_, err := Decompress(compressed[:cut])
		assert.Error(t, err, "cut at %d bytes", cut)
	}
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Decompress([]byte("definitely not gzip"))
	require.Error(t, err)

	// Right magic, corrupt body.
	corrupt := []byte{magic1, magic2, 0xde, 0xad, 0xbe, 0xef}
	_, err = Decompress(corrupt)
	require.Error(t, err)
}

func TestIsGzip(t *testing.T) {
	assert.True(t, IsGzip([]byte{0x1f, 0x8b}))
	assert.True(t, IsGzip([]byte{0x1f, 0x8b, 0x08}))
	assert.False(t, IsGzip([]byte{0x1f}))
	assert.False(t, IsGzip(nil))
	assert.False(t, IsGzip([]byte{0x50, 0x4b, 0x03, 0x04}))
}
