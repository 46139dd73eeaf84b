// Package id3v2 reads ID3v2.3 and ID3v2.4 tags and writes ID3v2.4 tags.
//
// A Tag is an ordered list of Frames. Each Frame pairs a four character
// identifier with a decoded Content value. Decoding keeps file order and
// never merges frames; Add appends.
package id3v2

import (
	"errors"
	"slices"
)

// Version is the major version of an ID3v2 tag.
type Version byte

const (
	Version3 Version = 3
	Version4 Version = 4
)

// WriteVersion is the only version Encode produces.
const WriteVersion = Version4

// ErrNoTag is returned when a file does not start with an ID3v2 tag.
var ErrNoTag = errors.New("id3v2: no tag")

// Frame is one identified unit of tag content.
type Frame struct {
	ID      string
	Content Content
}

// Tag is an ordered, mutable collection of frames.
type Tag struct {
	// Version is the version the tag was read as, or WriteVersion for a
	// tag built in memory.
	Version Version

	frames []Frame
}

// NewTag returns an empty tag.
func NewTag() *Tag {
	return &Tag{Version: WriteVersion}
}

// Frames returns the frames in order. The slice is a copy; the Content
// values are shared.
func (t *Tag) Frames() []Frame {
	return slices.Clone(t.frames)
}

// Len returns the number of frames.
func (t *Tag) Len() int {
	return len(t.frames)
}

// Add appends a frame.
func (t *Tag) Add(f Frame) {
	t.frames = append(t.frames, f)
}

// RemoveFunc removes every frame for which fn returns true and reports how
// many were removed. Order of the remaining frames is kept.
func (t *Tag) RemoveFunc(fn func(Frame) bool) int {
	before := len(t.frames)
	t.frames = slices.DeleteFunc(t.frames, fn)
	return before - len(t.frames)
}

// RemoveID removes every frame with the given id.
func (t *Tag) RemoveID(id string) int {
	return t.RemoveFunc(func(f Frame) bool { return f.ID == id })
}

// ValidID reports whether id is four characters from A-Z and 0-9.
func ValidID(id string) bool {
	if len(id) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := id[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
