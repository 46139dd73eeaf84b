package id3v2

import (
	"bytes"
	"encoding/binary"

	binutil "github.com/simonhull/tagframe/internal/binary"
)

// v3Frame builds an ID3v2.3 frame with a plain big-endian size.
func v3Frame(id string, flags uint16, body []byte) []byte {
	b := make([]byte, 10, 10+len(body))
	copy(b, id)
	binary.BigEndian.PutUint32(b[4:8], uint32(len(body)))
	binary.BigEndian.PutUint16(b[8:10], flags)
	return append(b, body...)
}

// v4Frame builds an ID3v2.4 frame with a synchsafe size.
func v4Frame(id string, flags uint16, body []byte) []byte {
	b := make([]byte, 10, 10+len(body))
	copy(b, id)
	size, _ := binutil.EncodeSynchsafe(uint32(len(body)))
	copy(b[4:8], size[:])
	binary.BigEndian.PutUint16(b[8:10], flags)
	return append(b, body...)
}

// buildTag assembles a tag header around body, followed by audio bytes.
func buildTag(version, flags byte, body []byte) []byte {
	size, _ := binutil.EncodeSynchsafe(uint32(len(body)))
	out := []byte{'I', 'D', '3', version, 0, flags}
	out = append(out, size[:]...)
	out = append(out, body...)
	return append(out, fakeAudio...)
}

// fakeAudio stands in for the MPEG stream after the tag.
var fakeAudio = []byte{0xFF, 0xFB, 0x90, 0x00, 0x01, 0x02, 0x03}

// unsync applies unsynchronisation by inserting 0x00 after every 0xFF.
func unsync(b []byte) []byte {
	var out bytes.Buffer
	for _, c := range b {
		out.WriteByte(c)
		if c == 0xFF {
			out.WriteByte(0x00)
		}
	}
	return out.Bytes()
}

// utf16BOM encodes ASCII s as little-endian UTF-16 with a BOM.
func utf16BOM(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func synchsafe(n int) []byte {
	b, _ := binutil.EncodeSynchsafe(uint32(n))
	return b[:]
}

func concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func decodeBytes(data []byte) (*Tag, error) {
	return Decode(bytes.NewReader(data), int64(len(data)), "test.mp3")
}
