package id3v2

import (
	"fmt"
	"io"

	"github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

// HeaderSize is the size of the tag header and of the optional footer.
const HeaderSize = 10

// Tag header flags.
const (
	flagUnsync   = 0x80
	flagExtended = 0x40
	flagFooter   = 0x10
)

// Header is the fixed 10-byte tag header.
type Header struct {
	Version  Version
	Revision byte
	Flags    byte
	Size     uint32 // tag size excluding header and footer
}

// TotalSize returns the number of bytes the tag occupies at the start of
// the file, including header and footer.
func (h Header) TotalSize() int64 {
	n := HeaderSize + int64(h.Size)
	if h.Version == Version4 && h.Flags&flagFooter != 0 {
		n += HeaderSize
	}
	return n
}

// Locate reads the tag header at the start of r.
//
// It returns ErrNoTag when the file does not begin with "ID3", and a
// typed error when the header is present but unusable.
func Locate(r io.ReaderAt, size int64, path string) (Header, error) {
	if size < HeaderSize {
		return Header{}, ErrNoTag
	}

	sr := binary.NewSafeReader(r, size, path)
	buf, err := sr.Bytes(0, HeaderSize, "ID3v2 header")
	if err != nil {
		return Header{}, err
	}

	if string(buf[0:3]) != "ID3" {
		return Header{}, ErrNoTag
	}

	h := Header{
		Version:  Version(buf[3]),
		Revision: buf[4],
		Flags:    buf[5],
		Size:     binary.DecodeSynchsafe(buf[6:10]),
	}

	if h.Version != Version3 && h.Version != Version4 {
		return Header{}, &types.UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", h.Version),
		}
	}

	if !binary.IsSynchsafe(buf[6:10]) {
		return Header{}, &types.CorruptedFileError{
			Path:   path,
			Reason: "tag size is not synchsafe",
			Offset: 6,
		}
	}

	if h.TotalSize() > size {
		return Header{}, &types.CorruptedFileError{
			Path:   path,
			Reason: fmt.Sprintf("tag size %d exceeds file size %d", h.TotalSize(), size),
			Offset: 6,
		}
	}

	return h, nil
}
