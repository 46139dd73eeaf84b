package id3v2

import (
	"bytes"
	"fmt"
	"io"

	binutil "github.com/simonhull/tagframe/internal/binary"
)

// DefaultPadding is the number of zero bytes written after the frames.
const DefaultPadding = 1024

// Encode writes tag as an ID3v2.4 tag followed by padding zero bytes and
// returns the number of bytes written.
//
// Text is written as UTF-8. Fields without an encoding byte (URLs, MIME
// types, owners, element ids) must be representable in ISO-8859-1.
func Encode(w io.Writer, tag *Tag, padding int) (int64, error) {
	if padding < 0 {
		return 0, fmt.Errorf("negative padding %d", padding)
	}

	frames, err := EncodeFrames(tag.frames)
	if err != nil {
		return 0, err
	}

	size := len(frames) + padding
	if size > binutil.MaxSynchsafe {
		return 0, fmt.Errorf("tag of %d bytes exceeds ID3v2 limit", size)
	}

	sw := binutil.NewSafeWriter(w)
	_ = sw.WriteString("ID3")
	_ = binutil.Write[uint8](sw, uint8(WriteVersion))
	_ = binutil.Write[uint8](sw, 0) // revision
	_ = binutil.Write[uint8](sw, 0) // flags
	_ = sw.WriteSynchsafe(uint32(size))
	_ = sw.WriteBytes(frames)
	_ = sw.WriteBytes(make([]byte, padding))
	if err := sw.Err(); err != nil {
		return sw.Offset(), fmt.Errorf("write tag: %w", err)
	}
	return sw.Offset(), nil
}

// EncodeFrames returns the ID3v2.4 encoding of frames without a tag header.
func EncodeFrames(frames []Frame) ([]byte, error) {
	var buf bytes.Buffer
	sw := binutil.NewSafeWriter(&buf)
	for _, f := range frames {
		if err := encodeFrame(sw, f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeFrame(sw *binutil.SafeWriter, f Frame) error {
	if !ValidID(f.ID) {
		return fmt.Errorf("invalid frame id %q", f.ID)
	}
	body, err := encodeBody(f.Content)
	if err != nil {
		return fmt.Errorf("encode frame %s: %w", f.ID, err)
	}
	if len(body) > binutil.MaxSynchsafe {
		return fmt.Errorf("frame %s of %d bytes exceeds ID3v2 limit", f.ID, len(body))
	}

	_ = sw.WriteString(f.ID)
	_ = sw.WriteSynchsafe(uint32(len(body)))
	_ = binutil.Write[uint16](sw, 0) // flags
	return sw.WriteBytes(body)
}

// bodyWriter accumulates a frame body, remembering the first error.
type bodyWriter struct {
	buf bytes.Buffer
	err error
}

func (b *bodyWriter) byte(v byte) {
	b.buf.WriteByte(v)
}

func (b *bodyWriter) raw(p []byte) {
	b.buf.Write(p)
}

// text writes a UTF-8 string, optionally NUL-terminated.
func (b *bodyWriter) text(s string, terminate bool) {
	b.buf.WriteString(s)
	if terminate {
		b.buf.WriteByte(0)
	}
}

// latin1 writes an ISO-8859-1 string, optionally NUL-terminated.
func (b *bodyWriter) latin1(s string, terminate bool) {
	if b.err != nil {
		return
	}
	enc, err := latin1(s)
	if err != nil {
		b.err = err
		return
	}
	b.buf.Write(enc)
	if terminate {
		b.buf.WriteByte(0)
	}
}

func (b *bodyWriter) lang(s string) {
	if b.err != nil {
		return
	}
	enc, err := LangBytes(s)
	if err != nil {
		b.err = err
		return
	}
	b.buf.Write(enc[:])
}

func (b *bodyWriter) uint32(v uint32) {
	b.buf.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (b *bodyWriter) frames(frames []Frame) {
	if b.err != nil {
		return
	}
	enc, err := EncodeFrames(frames)
	if err != nil {
		b.err = err
		return
	}
	b.buf.Write(enc)
}

func encodeBody(c Content) ([]byte, error) {
	var b bodyWriter

	switch v := c.(type) {
	case Text:
		b.byte(encodingUTF8)
		b.text(v.Value, false)
	case ExtendedText:
		b.byte(encodingUTF8)
		b.text(v.Description, true)
		b.text(v.Value, false)
	case Link:
		b.latin1(v.URL, false)
	case ExtendedLink:
		b.byte(encodingUTF8)
		b.text(v.Description, true)
		b.latin1(v.URL, false)
	case Comment:
		b.byte(encodingUTF8)
		b.lang(v.Lang)
		b.text(v.Description, true)
		b.text(v.Text, false)
	case Lyrics:
		b.byte(encodingUTF8)
		b.lang(v.Lang)
		b.text(v.Description, true)
		b.text(v.Text, false)
	case Picture:
		b.byte(encodingUTF8)
		b.latin1(v.MIMEType, true)
		b.byte(v.Type)
		b.text(v.Description, true)
		b.raw(v.Data)
	case EncapsulatedObject:
		b.byte(encodingUTF8)
		b.latin1(v.MIMEType, true)
		b.text(v.Filename, true)
		b.text(v.Description, true)
		b.raw(v.Data)
	case Unknown:
		b.raw(v.Data)
	case Popularimeter:
		b.latin1(v.Email, true)
		b.byte(v.Rating)
		if v.Counter > 0xFFFFFFFF {
			b.uint32(uint32(v.Counter >> 32))
		}
		b.uint32(uint32(v.Counter))
	case UniqueFileIdentifier:
		b.latin1(v.Owner, true)
		b.raw(v.Identifier)
	case Private:
		b.latin1(v.Owner, true)
		b.raw(v.Data)
	case SynchronisedLyrics:
		b.byte(encodingUTF8)
		b.lang(v.Lang)
		b.byte(v.TimestampFormat)
		b.byte(v.ContentType)
		b.text(v.Description, true)
		for _, line := range v.Lines {
			b.text(line.Text, true)
			b.uint32(line.Timestamp)
		}
	case Chapter:
		b.latin1(v.ElementID, true)
		b.uint32(v.StartTime)
		b.uint32(v.EndTime)
		b.uint32(v.StartOffset)
		b.uint32(v.EndOffset)
		b.frames(v.Frames)
	case TableOfContents:
		if len(v.Children) > 0xFF {
			return nil, fmt.Errorf("table of contents has %d entries, limit is 255", len(v.Children))
		}
		b.latin1(v.ElementID, true)
		var flags byte
		if v.TopLevel {
			flags |= 0x02
		}
		if v.Ordered {
			flags |= 0x01
		}
		b.byte(flags)
		b.byte(byte(len(v.Children)))
		for _, child := range v.Children {
			b.latin1(child, true)
		}
		b.frames(v.Frames)
	case MpegLocationLookupTable:
		b.raw([]byte{byte(v.FramesBetweenReference >> 8), byte(v.FramesBetweenReference)})
		b.raw([]byte{byte(v.BytesBetweenReference >> 16), byte(v.BytesBetweenReference >> 8), byte(v.BytesBetweenReference)})
		b.raw([]byte{byte(v.MillisBetweenReference >> 16), byte(v.MillisBetweenReference >> 8), byte(v.MillisBetweenReference)})
		b.byte(v.BitsForBytesDeviation)
		b.byte(v.BitsForMillisDeviation)
		b.raw(v.Deviations)
	default:
		return nil, fmt.Errorf("cannot encode content %T", c)
	}

	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}
