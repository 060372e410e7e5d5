package tiled

import (
	"encoding/base64"
	"encoding/binary"
	"strconv"
	"strings"
)

// Encoding names the text form of a layer's cell payload.
type Encoding string

// Encodings understood by the decoder.
const (
	EncodingCSV    Encoding = "csv"
	EncodingBase64 Encoding = "base64"
)

// Decoder turns encoded layer payloads into raw cell values.
// The zero value is ready to use and rejects zstd.
type Decoder struct {
	// AllowZstd enables the zstd compression scheme.
	AllowZstd bool
}

// DecodeData decodes a payload with the default decoder.
func DecodeData(enc Encoding, comp Compression, payload string, expected int) ([]uint32, error) {
	return Decoder{}.Data(enc, comp, payload, expected)
}

// DecodeCells decodes a payload with the default decoder and unpacks the flags.
func DecodeCells(enc Encoding, comp Compression, payload string, expected int) ([]Cell, error) {
	return Decoder{}.Cells(enc, comp, payload, expected)
}

// Data decodes payload into exactly expected raw cell values.
func (d Decoder) Data(enc Encoding, comp Compression, payload string, expected int) ([]uint32, error) {
	var (
		raw []uint32
		err error
	)

	switch enc {
	case EncodingCSV:
		if err := d.checkCompression(comp); err != nil {
			return nil, err
		}
		raw = decodeCSV(payload)
	case EncodingBase64:
		raw, err = d.decodeBase64(payload, comp)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &UnsupportedEncodingError{Encoding: string(enc)}
	}

	if len(raw) != expected {
		return nil, &LayerSizeMismatchError{Expected: expected, Got: len(raw)}
	}
	return raw, nil
}

// Cells is Data followed by flag extraction.
func (d Decoder) Cells(enc Encoding, comp Compression, payload string, expected int) ([]Cell, error) {
	raw, err := d.Data(enc, comp, payload, expected)
	if err != nil {
		return nil, err
	}
	return DecodeAll(raw), nil
}

// decodeCSV parses comma-separated ids. Empty and non-numeric tokens
// become BlankCell instead of failing the layer.
func decodeCSV(payload string) []uint32 {
	if strings.TrimSpace(payload) == "" {
		return []uint32{}
	}

	tokens := strings.Split(payload, ",")
	raw := make([]uint32, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 32)
		if err != nil {
			raw[i] = BlankCell
			continue
		}
		raw[i] = uint32(v)
	}
	return raw
}

func (d Decoder) decodeBase64(payload string, comp Compression) ([]uint32, error) {
	if err := d.checkCompression(comp); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(stripSpace(payload))
	if err != nil {
		return nil, &MalformedEncodingError{Encoding: EncodingBase64, Reason: "invalid base64", Err: err}
	}

	data, err = d.decompress(data, comp)
	if err != nil {
		return nil, &MalformedEncodingError{Encoding: EncodingBase64, Reason: string(comp.normalize()) + " stream", Err: err}
	}

	return bytesToCells(data), nil
}

// bytesToCells reads little-endian uint32 groups. A trailing partial
// group is dropped.
func bytesToCells(data []byte) []uint32 {
	n := len(data) / 4
	raw := make([]uint32, n)
	for i := 0; i < n; i++ {
		raw[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return raw
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			return -1
		}
		return r
	}, s)
}
