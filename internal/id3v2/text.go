package id3v2

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encoding bytes.
const (
	encodingLatin1  byte = 0
	encodingUTF16   byte = 1 // with BOM
	encodingUTF16BE byte = 2
	encodingUTF8    byte = 3
)

func decoderFor(enc byte) (*encoding.Decoder, error) {
	switch enc {
	case encodingLatin1:
		return charmap.ISO8859_1.NewDecoder(), nil
	case encodingUTF16:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder(), nil
	case encodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder(), nil
	case encodingUTF8:
		return unicode.UTF8.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("invalid text encoding %d", enc)
	}
}

// terminator returns the string terminator for the encoding.
func terminator(enc byte) []byte {
	if enc == encodingUTF16 || enc == encodingUTF16BE {
		return []byte{0, 0}
	}
	return []byte{0}
}

// decodeString decodes one string without its terminator.
func decodeString(enc byte, b []byte) (string, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", nil
	}
	if (enc == encodingUTF16 || enc == encodingUTF16BE) && len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	out, err := dec.Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode text: %w", err)
	}
	return string(out), nil
}

// decodeFinal decodes the last string of a frame body, where a terminator
// is optional.
func decodeFinal(enc byte, b []byte) (string, error) {
	term := terminator(enc)
	for len(b) >= len(term) && bytes.HasSuffix(b, term) && len(b)%len(term) == 0 {
		b = b[:len(b)-len(term)]
	}
	return decodeString(enc, b)
}

// decodeTextList decodes the NUL-separated values of a text frame and joins
// them with NUL. Each UTF-16 value carries its own BOM, so values are
// decoded one at a time.
func decodeTextList(enc byte, b []byte) (string, error) {
	term := terminator(enc)
	for len(b) >= len(term) && bytes.HasSuffix(b, term) && len(b)%len(term) == 0 {
		b = b[:len(b)-len(term)]
	}

	var values []string
	for len(b) > 0 {
		i := indexAligned(b, term)
		part := b
		if i >= 0 {
			part, b = b[:i], b[i+len(term):]
		} else {
			b = nil
		}
		s, err := decodeString(enc, part)
		if err != nil {
			return "", err
		}
		values = append(values, s)
	}
	return strings.Join(values, "\x00"), nil
}

func indexAligned(b, term []byte) int {
	step := len(term)
	for i := 0; i+step <= len(b); i += step {
		if bytes.Equal(b[i:i+step], term) {
			return i
		}
	}
	return -1
}

// latin1 encodes s as ISO-8859-1. Fields such as MIME types, URLs and
// owner identifiers have no encoding byte and are always ISO-8859-1.
func latin1(s string) ([]byte, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%q is not representable in ISO-8859-1: %w", s, err)
	}
	return b, nil
}

// LangBytes encodes a COMM, USLT or SYLT language code. The field is three
// ISO-8859-1 bytes, so s must be three characters of that charset.
func LangBytes(s string) ([3]byte, error) {
	b, err := latin1(s)
	if err != nil {
		return [3]byte{}, err
	}
	if len(b) != 3 {
		return [3]byte{}, fmt.Errorf("language %q must be 3 ISO-8859-1 characters", s)
	}
	return [3]byte(b), nil
}
