package tiled

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression names a compression scheme applied to base64 layer data.
type Compression string

// Compression schemes understood by the decoder.
const (
	CompressionNone Compression = ""
	CompressionZlib Compression = "zlib"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// zlibHeaderSize is the CMF/FLG prefix skipped before raw deflate data.
const zlibHeaderSize = 2

var errShortZlibHeader = errors.New("stream shorter than zlib header")

// normalize folds an explicit "none" into the absent case.
func (c Compression) normalize() Compression {
	if c == "none" {
		return CompressionNone
	}
	return c
}

// decompress fully drains the decompressor for c and returns the result.
// The reader is closed before returning.
func (d Decoder) decompress(data []byte, c Compression) ([]byte, error) {
	switch c.normalize() {
	case CompressionNone:
		return data, nil
	case CompressionZlib:
		// The header is discarded without validation.
		if len(data) < zlibHeaderSize {
			return nil, errShortZlibHeader
		}
		r := flate.NewReader(bytes.NewReader(data[zlibHeaderSize:]))
		defer r.Close()
		return readAll(r)
	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return readAll(r)
	case CompressionZstd:
		if !d.AllowZstd {
			return nil, &UnsupportedCompressionError{Compression: string(c)}
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, &UnsupportedCompressionError{Compression: string(c)}
	}
}

func readAll(r io.Reader) ([]byte, error) {
	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		return nil, fmt.Errorf("reading decompressed stream: %w", err)
	}
	return out.Bytes(), nil
}

// checkCompression validates a compression name without decompressing anything.
func (d Decoder) checkCompression(c Compression) error {
	switch c.normalize() {
	case CompressionNone, CompressionZlib, CompressionGzip:
		return nil
	case CompressionZstd:
		if d.AllowZstd {
			return nil
		}
	}
	return &UnsupportedCompressionError{Compression: string(c)}
}
