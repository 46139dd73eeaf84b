// Package binary provides bounds-checked reading and writing primitives for tag data.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the number of readable bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Bytes reads n bytes at off into a fresh slice.
func (sr *SafeReader) Bytes(off int64, n int, what string) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := sr.ReadAt(buf, off, what); err != nil {
		return nil, err
	}
	return buf, nil
}

// Read reads a big-endian value of type T from the given offset.
func Read[T uint8 | uint16 | uint32](sr *SafeReader, off int64, what string) (T, error) {
	var zero T
	buf := make([]byte, sizeOf[T]())
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}
	return decode[T](buf), nil
}

func sizeOf[T uint8 | uint16 | uint32]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	default:
		return 4
	}
}

func decode[T uint8 | uint16 | uint32](buf []byte) T {
	switch len(buf) {
	case 1:
		return T(buf[0])
	case 2:
		return T(binary.BigEndian.Uint16(buf))
	default:
		return T(binary.BigEndian.Uint32(buf))
	}
}

// Cursor reads sequentially from an in-memory frame body.
//
// The first failed read is remembered and every later read returns a zero
// value, so a parser can read a whole layout and check Err once.
type Cursor struct {
	buf  []byte
	pos  int
	what string
	err  error
}

// NewCursor creates a Cursor over buf. what names the structure in errors.
func NewCursor(buf []byte, what string) *Cursor {
	return &Cursor{buf: buf, what: what}
}

// Err returns the first error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// Offset returns the number of bytes consumed.
func (c *Cursor) Offset() int {
	return c.pos
}

// Next returns the next n bytes without copying.
func (c *Cursor) Next(n int, field string) []byte {
	if c.err != nil {
		return nil
	}
	if n < 0 || n > c.Len() {
		c.err = fmt.Errorf("%s: %s needs %d bytes at offset %d, %d left", c.what, field, n, c.pos, c.Len())
		return nil
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b
}

// Byte reads one byte.
func (c *Cursor) Byte(field string) byte {
	b := c.Next(1, field)
	if b == nil {
		return 0
	}
	return b[0]
}

// Value reads a big-endian value of type T.
func Value[T uint8 | uint16 | uint32](c *Cursor, field string) T {
	b := c.Next(sizeOf[T](), field)
	if b == nil {
		var zero T
		return zero
	}
	return decode[T](b)
}

// Until returns the bytes up to the first occurrence of term, aligned to
// len(term), and consumes the terminator. A missing terminator consumes the
// rest of the buffer.
func (c *Cursor) Until(term []byte) []byte {
	if c.err != nil {
		return nil
	}
	rest := c.buf[c.pos:]
	step := len(term)
	for i := 0; i+step <= len(rest); i += step {
		if string(rest[i:i+step]) == string(term) {
			c.pos += i + step
			return rest[:i]
		}
	}
	c.pos = len(c.buf)
	return rest
}

// Rest returns all unread bytes and consumes them.
func (c *Cursor) Rest() []byte {
	if c.err != nil {
		return nil
	}
	b := c.buf[c.pos:]
	c.pos = len(c.buf)
	return b
}
