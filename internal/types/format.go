package types

import (
	"io"

	"github.com/simonhull/tagframe/internal/binary"
)

// Format is the container detected from a file's leading bytes.
type Format int

const (
	// FormatUnknown is any file without a recognised signature.
	FormatUnknown Format = iota
	// FormatMP3 is an MPEG audio stream, with or without a leading ID3v2 tag.
	FormatMP3
	FormatFLAC
	FormatM4A
	FormatM4B
	FormatOgg
	FormatOpus
	FormatWAV
	FormatAIFF
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	case FormatM4A:
		return "M4A"
	case FormatM4B:
		return "M4B"
	case FormatOgg:
		return "Ogg Vorbis"
	case FormatOpus:
		return "Opus"
	case FormatWAV:
		return "WAV"
	case FormatAIFF:
		return "AIFF"
	default:
		return "Unknown"
	}
}

// AcceptsLeadingTag reports whether an ID3v2 tag may be placed at the start
// of a file of this format. Containers with their own leading signature are
// corrupted by one.
func (f Format) AcceptsLeadingTag() bool {
	return f == FormatMP3 || f == FormatUnknown
}

// DetectFormat determines the container by examining magic bytes.
//
// Files shorter than 4 bytes and files without a known signature report
// FormatUnknown with no error; only I/O failures are returned.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, nil
	}

	sr := binary.NewSafeReader(r, size, path)

	head, err := sr.Bytes(0, int(min(size, 12)), "file magic bytes")
	if err != nil {
		return FormatUnknown, err
	}
	magic := string(head[:4])

	switch {
	case magic == "fLaC":
		return FormatFLAC, nil
	case magic[:3] == "ID3":
		return FormatMP3, nil
	case head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return FormatMP3, nil
	case magic == "OggS":
		return detectOgg(sr), nil
	case len(head) < 12:
		return FormatUnknown, nil
	case magic == "RIFF" && string(head[8:12]) == "WAVE":
		return FormatWAV, nil
	case magic == "FORM" && (string(head[8:12]) == "AIFF" || string(head[8:12]) == "AIFC"):
		return FormatAIFF, nil
	case string(head[4:8]) == "ftyp":
		return detectBrand(head[8:12]), nil
	}

	return FormatUnknown, nil
}

// detectOgg looks into the first page for the Opus codec magic.
// Ogg page header: 27 bytes fixed, then the segment table.
func detectOgg(sr *binary.SafeReader) Format {
	segCount, err := binary.Read[uint8](sr, 26, "segment count")
	if err != nil {
		return FormatOgg
	}
	codec, err := sr.Bytes(int64(27+int(segCount)), 8, "codec magic")
	if err == nil && string(codec) == "OpusHead" {
		return FormatOpus
	}
	return FormatOgg
}

func detectBrand(brand []byte) Format {
	if string(brand) == "M4B " {
		return FormatM4B
	}
	// Any other brand is still an ISO base media container.
	return FormatM4A
}
