package id3v2

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zlib"

	binutil "github.com/simonhull/tagframe/internal/binary"
	"github.com/simonhull/tagframe/internal/types"
)

const frameHeaderSize = 10

// ID3v2.4 frame format flags.
const (
	v4Grouping    = 0x0040
	v4Compression = 0x0008
	v4Encryption  = 0x0004
	v4Unsync      = 0x0002
	v4DataLength  = 0x0001
)

// ID3v2.3 frame format flags.
const (
	v3Compression = 0x0080
	v3Encryption  = 0x0040
	v3Grouping    = 0x0020
)

// maxFrameSize guards decompression against absurd declared sizes.
const maxFrameSize = 256 << 20

// ReadFile decodes the tag at the start of the named file.
func ReadFile(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	return Decode(f, info.Size(), path)
}

// Decode reads the tag at the start of r.
//
// It returns ErrNoTag when no tag is present. Corrupt structure yields a
// *types.CorruptedFileError and unreadable layouts a
// *types.UnsupportedFormatError.
func Decode(r io.ReaderAt, size int64, path string) (*Tag, error) {
	h, err := Locate(r, size, path)
	if err != nil {
		return nil, err
	}

	sr := binutil.NewSafeReader(r, size, path)
	body, err := sr.Bytes(HeaderSize, int(h.Size), "tag body")
	if err != nil {
		return nil, err
	}

	d := &decoder{path: path, version: h.Version}
	if h.Flags&flagUnsync != 0 {
		if h.Version == Version3 {
			body = binutil.Resync(body)
		} else {
			d.unsyncAll = true
		}
	}

	start := 0
	if h.Flags&flagExtended != 0 {
		start, err = d.extendedHeaderSize(body)
		if err != nil {
			return nil, err
		}
	}

	frames, err := d.frames(body[start:], HeaderSize+int64(start))
	if err != nil {
		return nil, err
	}

	return &Tag{Version: h.Version, frames: frames}, nil
}

type decoder struct {
	path      string
	version   Version
	unsyncAll bool
}

func (d *decoder) corrupt(off int64, format string, args ...any) error {
	return &types.CorruptedFileError{
		Path:   d.path,
		Reason: fmt.Sprintf(format, args...),
		Offset: off,
	}
}

// extendedHeaderSize returns the number of body bytes the extended header
// occupies. ID3v2.4 counts the size field itself; ID3v2.3 does not.
func (d *decoder) extendedHeaderSize(body []byte) (int, error) {
	if len(body) < 4 {
		return 0, d.corrupt(HeaderSize, "extended header truncated")
	}
	var n int
	if d.version == Version4 {
		n = int(binutil.DecodeSynchsafe(body[:4]))
	} else {
		n = int(binary.BigEndian.Uint32(body[:4])) + 4
	}
	if n < 4 || n > len(body) {
		return 0, d.corrupt(HeaderSize, "extended header size %d out of range", n)
	}
	return n, nil
}

// frames decodes a sequence of frames. base is the file offset of data[0]
// and is only used for error reporting.
func (d *decoder) frames(data []byte, base int64) ([]Frame, error) {
	var frames []Frame
	pos := 0
	for pos+frameHeaderSize <= len(data) {
		// Padding ends the frame list.
		if data[pos] == 0 {
			break
		}

		hdr := data[pos : pos+frameHeaderSize]
		id := string(hdr[0:4])
		if !ValidID(id) {
			return nil, d.corrupt(base+int64(pos), "invalid frame id %q", id)
		}

		var size int
		if d.version == Version4 {
			size = int(binutil.DecodeSynchsafe(hdr[4:8]))
		} else {
			size = int(binary.BigEndian.Uint32(hdr[4:8]))
		}
		flags := binary.BigEndian.Uint16(hdr[8:10])

		end := pos + frameHeaderSize + size
		if size > len(data)-pos-frameHeaderSize {
			return nil, d.corrupt(base+int64(pos), "frame %s size %d exceeds tag", id, size)
		}

		body, err := d.unwrap(id, flags, data[pos+frameHeaderSize:end])
		if err != nil {
			return nil, err
		}

		content, err := d.decodeBody(id, body, base+int64(pos+frameHeaderSize))
		if err != nil {
			return nil, err
		}

		frames = append(frames, Frame{ID: id, Content: content})
		pos = end
	}
	return frames, nil
}

// unwrap strips the per-frame additions announced by the format flags and
// returns the plain frame body.
func (d *decoder) unwrap(id string, flags uint16, body []byte) ([]byte, error) {
	var compressed, encrypted bool

	if d.version == Version4 {
		c := binutil.NewCursor(body, "frame "+id)
		if flags&v4Grouping != 0 {
			c.Byte("group id")
		}
		encrypted = flags&v4Encryption != 0
		if encrypted {
			c.Byte("encryption method")
		}
		if flags&v4DataLength != 0 {
			c.Next(4, "data length indicator")
		}
		body = c.Rest()
		if err := c.Err(); err != nil {
			return nil, &types.CorruptedFileError{Path: d.path, Reason: err.Error()}
		}
		if flags&v4Unsync != 0 || d.unsyncAll {
			body = binutil.Resync(body)
		}
		compressed = flags&v4Compression != 0
	} else {
		c := binutil.NewCursor(body, "frame "+id)
		compressed = flags&v3Compression != 0
		if compressed {
			c.Next(4, "decompressed size")
		}
		encrypted = flags&v3Encryption != 0
		if encrypted {
			c.Byte("encryption method")
		}
		if flags&v3Grouping != 0 {
			c.Byte("group id")
		}
		body = c.Rest()
		if err := c.Err(); err != nil {
			return nil, &types.CorruptedFileError{Path: d.path, Reason: err.Error()}
		}
	}

	if encrypted {
		return nil, &types.UnsupportedFormatError{
			Path:   d.path,
			Reason: fmt.Sprintf("frame %s is encrypted", id),
		}
	}

	if compressed {
		return d.inflate(id, body)
	}
	return body, nil
}

func (d *decoder) inflate(id string, body []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, &types.CorruptedFileError{
			Path:   d.path,
			Reason: fmt.Sprintf("frame %s: %v", id, err),
		}
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxFrameSize+1))
	if err != nil {
		return nil, &types.CorruptedFileError{
			Path:   d.path,
			Reason: fmt.Sprintf("frame %s: inflate: %v", id, err),
		}
	}
	if len(out) > maxFrameSize {
		return nil, &types.CorruptedFileError{
			Path:   d.path,
			Reason: fmt.Sprintf("frame %s inflates past %d bytes", id, maxFrameSize),
		}
	}
	return out, nil
}
