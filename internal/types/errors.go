package types

import "fmt"

// UnsupportedFormatError is returned when a tag uses a layout this package
// cannot read, such as an ID3v2.2 header.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when tag structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// UnsupportedWriteError indicates the file is a container that cannot carry
// a leading ID3v2 tag.
type UnsupportedWriteError struct {
	Reason string
	Format Format
}

func (e *UnsupportedWriteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("write not supported for %s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("write not supported for %s", e.Format)
}

// ReadError wraps any failure to read an existing tag other than the tag
// being absent.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read tag from %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError wraps any failure to write a tag back to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write tag to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// UnsupportedContentError is returned when a frame holds content that has no
// Record representation. The whole operation fails rather than dropping it.
type UnsupportedContentError struct {
	ID      string // frame id, e.g. "POPM"
	Content string // content variant name, e.g. "popularimeter"
}

func (e *UnsupportedContentError) Error() string {
	return fmt.Sprintf("frame %s: unsupported content %q", e.ID, e.Content)
}

// UnsupportedKindError is returned for a Record whose Kind is not one of
// the supported kinds.
type UnsupportedKindError struct {
	Kind Kind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported record kind %q", string(e.Kind))
}

// MissingFieldError is returned when a Record lacks a field its kind
// requires, such as a picture without a picture type.
type MissingFieldError struct {
	Kind  Kind
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record: missing %s", e.Kind, e.Field)
}

// InvalidFieldError is returned when a Record field is present but unusable.
type InvalidFieldError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s record: invalid %s: %s", e.Kind, e.Field, e.Reason)
}
