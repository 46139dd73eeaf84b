package tagframe

import (
	"github.com/simonhull/tagframe/internal/types"
)

// ReadError wraps any failure to read an existing tag. A file without a tag
// is not a failure.
type ReadError = types.ReadError

// WriteError wraps any failure to write the updated tag.
type WriteError = types.WriteError

// UnsupportedFormatError is returned when a tag uses a layout that cannot be
// read, such as ID3v2.2 or encrypted frames. It is wrapped in a ReadError.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is returned when tag structure is invalid. It is
// wrapped in a ReadError.
type CorruptedFileError = types.CorruptedFileError

// UnsupportedWriteError is returned when the file is a container that cannot
// carry a leading ID3v2 tag. It is wrapped in a WriteError.
type UnsupportedWriteError = types.UnsupportedWriteError

// UnsupportedContentError is returned when a frame holds content that no
// Record kind can represent.
type UnsupportedContentError = types.UnsupportedContentError

// UnsupportedKindError is returned for a Record with an unrecognised Kind.
type UnsupportedKindError = types.UnsupportedKindError

// MissingFieldError is returned when a Record lacks a field its kind needs.
type MissingFieldError = types.MissingFieldError

// InvalidFieldError is returned when a Record field is present but unusable.
type InvalidFieldError = types.InvalidFieldError

// Format is the container detected from a file's leading bytes. It is
// reported by UnsupportedWriteError.
type Format = types.Format

const (
	FormatUnknown = types.FormatUnknown
	FormatMP3     = types.FormatMP3
	FormatFLAC    = types.FormatFLAC
	FormatM4A     = types.FormatM4A
	FormatM4B     = types.FormatM4B
	FormatOgg     = types.FormatOgg
	FormatOpus    = types.FormatOpus
	FormatWAV     = types.FormatWAV
	FormatAIFF    = types.FormatAIFF
)
