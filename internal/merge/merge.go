// Package merge applies host edits to a decoded tag.
//
// Edits are applied strictly in order. Adding a frame of an id-scoped kind
// replaces every frame with the same id; pictures and encapsulated objects
// accumulate. Removal of pictures and objects matches on content, removal of
// every other kind matches on frame id.
package merge

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/record"
	"github.com/simonhull/tagframe/internal/types"
)

// Apply applies edits to tag in order. The first failing edit aborts the
// call; edits before it have already been applied to tag, so callers must
// discard tag on error.
func Apply(tag *id3v2.Tag, edits []types.Record, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for i, edit := range edits {
		var err error
		if edit.Remove {
			err = remove(tag, edit, logger)
		} else {
			err = add(tag, edit, logger)
		}
		if err != nil {
			return fmt.Errorf("edit %d: %w", i, err)
		}
	}
	return nil
}

func add(tag *id3v2.Tag, edit types.Record, logger *slog.Logger) error {
	frame, err := record.ToFrame(edit)
	if err != nil {
		return err
	}

	replaced := 0
	if !edit.Kind.Structural() {
		replaced = tag.RemoveID(frame.ID)
	}
	tag.Add(frame)

	logger.Debug("frame added",
		"id", frame.ID,
		"kind", string(edit.Kind),
		"replaced", replaced,
	)
	return nil
}

func remove(tag *id3v2.Tag, edit types.Record, logger *slog.Logger) error {
	if !edit.Kind.Valid() {
		return &types.UnsupportedKindError{Kind: edit.Kind}
	}

	var n int
	switch edit.Kind {
	case types.KindPicture:
		p, ok := edit.Payload.(types.Picture)
		if !ok {
			return &types.MissingFieldError{Kind: edit.Kind, Field: "pictureType"}
		}
		n = RemovePictures(tag, p.PictureType)

	case types.KindEncapsulatedObject:
		o, ok := edit.Payload.(types.EncapsulatedObject)
		if !ok {
			return &types.MissingFieldError{Kind: edit.Kind, Field: "payload"}
		}
		n = RemoveObjects(tag, o)

	default:
		// Kinds with a canonical id resolve an empty id the way adds do.
		id := edit.ID
		if id == "" {
			var err error
			if id, err = record.ResolveID(edit); err != nil {
				return err
			}
		}
		n = RemoveID(tag, id)
		edit.ID = id
	}

	logger.Debug("frames removed",
		"id", edit.ID,
		"kind", string(edit.Kind),
		"removed", n,
	)
	return nil
}

// RemovePictures removes every picture frame whose type equals typ after
// normalisation. Description and data are not compared, so all pictures of
// that type go.
func RemovePictures(tag *id3v2.Tag, typ types.PictureType) int {
	want := byte(typ.Normalize())
	return tag.RemoveFunc(func(f id3v2.Frame) bool {
		p, ok := f.Content.(id3v2.Picture)
		return ok && p.Type == want
	})
}

// RemoveObjects removes every encapsulated object equal to obj on MIME type,
// filename, description and data.
func RemoveObjects(tag *id3v2.Tag, obj types.EncapsulatedObject) int {
	return tag.RemoveFunc(func(f id3v2.Frame) bool {
		o, ok := f.Content.(id3v2.EncapsulatedObject)
		return ok &&
			o.MIMEType == obj.MIMEType &&
			o.Filename == obj.Filename &&
			o.Description == obj.Description &&
			bytes.Equal(o.Data, obj.Data)
	})
}

// RemoveID removes every frame with the given id, whatever its content.
func RemoveID(tag *id3v2.Tag, id string) int {
	return tag.RemoveID(id)
}
