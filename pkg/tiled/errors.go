package tiled

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAtlasColumns is returned when a tileset has neither a column count
	// nor an atlas image to derive one from.
	ErrNoAtlasColumns = errors.New("tileset has no atlas columns")

	// ErrBadChunkSize is returned for a chunk without a positive width and height.
	ErrBadChunkSize = errors.New("chunk size must be positive")
)

// UnsupportedEncodingError reports a layer encoding other than csv or base64.
type UnsupportedEncodingError struct {
	Encoding string
}

func (e *UnsupportedEncodingError) Error() string {
	return fmt.Sprintf("unsupported layer encoding %q", e.Encoding)
}

// UnsupportedCompressionError reports a compression scheme that is not implemented.
type UnsupportedCompressionError struct {
	Compression string
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported layer compression %q", e.Compression)
}

// MalformedEncodingError reports a payload that does not parse as its declared encoding.
type MalformedEncodingError struct {
	Encoding Encoding
	Reason   string
	Err      error
}

func (e *MalformedEncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s data: %s: %v", e.Encoding, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed %s data: %s", e.Encoding, e.Reason)
}

func (e *MalformedEncodingError) Unwrap() error {
	return e.Err
}

// LayerSizeMismatchError reports a decoded cell count that differs from the region area.
type LayerSizeMismatchError struct {
	Expected int
	Got      int
}

func (e *LayerSizeMismatchError) Error() string {
	return fmt.Sprintf("layer size mismatch: expected %d cells, got %d", e.Expected, e.Got)
}

// UnresolvedTileError reports a global id that no tileset owns.
type UnresolvedTileError struct {
	GID    uint32
	Reason string
}

func (e *UnresolvedTileError) Error() string {
	return fmt.Sprintf("unresolved tile gid %d: %s", e.GID, e.Reason)
}

// TileIndexOutOfRangeError reports a local id beyond a tileset's tile count.
type TileIndexOutOfRangeError struct {
	LocalID   uint32
	TileCount int
	Tileset   string
}

func (e *TileIndexOutOfRangeError) Error() string {
	if e.Tileset != "" {
		return fmt.Sprintf("tile %d out of range for tileset %q (%d tiles)", e.LocalID, e.Tileset, e.TileCount)
	}
	return fmt.Sprintf("tile %d out of range (%d tiles)", e.LocalID, e.TileCount)
}
