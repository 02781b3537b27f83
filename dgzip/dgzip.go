// Package dgzip implements a byte-deterministic gzip codec.
//
// Standard gzip writers record a modification time and host OS in the
// member header, so equal input can compress to different bytes on
// different machines. Compress instead emits a hand-built RFC 1952
// envelope with every non-content field zeroed or fixed (FLG=0,
// MTIME=0, XFL=0, OS=0xff) around a raw DEFLATE payload, so equal
// input always yields equal output. Decompress accepts any valid gzip
// stream, not just ones produced here.
package dgzip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

const (
	magic1 = 0x1f
	magic2 = 0x8b

	methodDeflate = 8
	osUnknown     = 0xff

	headerSize  = 10
	trailerSize = 8
)

// Compress returns data wrapped in a deterministic gzip envelope.
// Empty input yields a valid minimal stream, never an empty slice.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(headerSize + trailerSize + len(data)/2)

	// FLG=0: no FNAME, FEXTRA, FCOMMENT, or FHCRC fields follow.
	buf.Write([]byte{magic1, magic2, methodDeflate, 0, 0, 0, 0, 0, 0, osUnknown})

	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, fmt.Errorf("init deflate: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, fmt.Errorf("finish deflate: %w", err)
	}

	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[0:], crc32.ChecksumIEEE(data))
	binary.LittleEndian.PutUint32(trailer[4:], uint32(len(data)))
	buf.Write(trailer[:])

	return buf.Bytes(), nil
}

// Decompress inflates a gzip stream. Truncated or corrupt input is an
// error; no partial output is returned.
func Decompress(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return nil, fmt.Errorf("not gzip data: missing magic bytes")
	}

	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read gzip header: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if err := zr.Close(); err != nil {
		return nil, fmt.Errorf("verify gzip trailer: %w", err)
	}
	return out, nil
}

// IsGzip reports whether data starts with the gzip magic bytes.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == magic1 && data[1] == magic2
}
