// Package encoding provides text decoding helpers for map documents
// written in legacy character sets.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// CharsetReader returns a reader that converts input from the named
// character set to UTF-8. It has the signature expected by
// xml.Decoder.CharsetReader. UTF-8 and US-ASCII labels pass input through.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return input, nil
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}

// Lookup resolves an IANA or MIME charset label. It returns a nil
// encoding for labels that are already UTF-8 compatible.
func Lookup(label string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	switch name {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return nil, nil
	case "euc-kr", "cp949", "uhc":
		// Korean editors commonly mislabel CP949 as EUC-KR; the decoder
		// accepts both.
		return korean.EUCKR, nil
	}

	enc, err := ianaindex.MIME.Encoding(name)
	if err != nil || enc == nil {
		enc, err = ianaindex.IANA.Encoding(name)
	}
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc, nil
}

// ToUTF8 converts data from the named charset to a UTF-8 string.
// Returns the input unchanged if conversion fails.
func ToUTF8(label string, data []byte) string {
	enc, err := Lookup(label)
	if err != nil || enc == nil {
		return string(data)
	}
	result, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// TrimBOM removes a leading UTF-8 byte order mark.
func TrimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}
