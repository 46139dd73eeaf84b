// Package record translates between decoded tag frames and host-facing
// Records.
package record

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/types"
)

// Canonical frame ids for the kinds that have exactly one.
var canonicalID = map[types.Kind]string{
	types.KindExtendedText:       "TXXX",
	types.KindExtendedLink:       "WXXX",
	types.KindComment:            "COMM",
	types.KindLyrics:             "USLT",
	types.KindPicture:            "APIC",
	types.KindEncapsulatedObject: "GEOB",
}

// DefaultLang is used for comments and lyrics that carry no language.
const DefaultLang = "XXX"

// FromTag converts every frame of tag, in order. A single frame with
// unsupported content fails the whole conversion and no records are
// returned.
func FromTag(tag *id3v2.Tag) ([]types.Record, error) {
	frames := tag.Frames()
	records := make([]types.Record, 0, len(frames))
	for _, f := range frames {
		rec, err := FromFrame(f)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// FromFrame converts one frame. Binary payloads are copied.
func FromFrame(f id3v2.Frame) (types.Record, error) {
	rec := types.Record{ID: f.ID}

	switch c := f.Content.(type) {
	case id3v2.Text:
		rec.Kind = types.KindText
		rec.Payload = types.String(c.Value)
	case id3v2.ExtendedText:
		rec.Kind = types.KindExtendedText
		rec.Payload = types.ExtendedText{Value: c.Value, Description: c.Description}
	case id3v2.Link:
		rec.Kind = types.KindLink
		rec.Payload = types.String(c.URL)
	case id3v2.ExtendedLink:
		rec.Kind = types.KindExtendedLink
		rec.Payload = types.ExtendedLink{Description: c.Description, Link: c.URL}
	case id3v2.Comment:
		rec.Kind = types.KindComment
		rec.Payload = types.Comment{Lang: c.Lang, Description: c.Description, Text: c.Text}
	case id3v2.Lyrics:
		rec.Kind = types.KindLyrics
		rec.Payload = types.Lyrics{Lang: c.Lang, Description: c.Description, Text: c.Text}
	case id3v2.Picture:
		rec.Kind = types.KindPicture
		rec.Payload = types.Picture{
			MIMEType:    c.MIMEType,
			PictureType: types.PictureType(c.Type),
			Description: c.Description,
			Data:        bytes.Clone(c.Data),
		}
	case id3v2.EncapsulatedObject:
		rec.Kind = types.KindEncapsulatedObject
		rec.Payload = types.EncapsulatedObject{
			MIMEType:    c.MIMEType,
			Filename:    c.Filename,
			Description: c.Description,
			Data:        bytes.Clone(c.Data),
		}
	case id3v2.Unknown:
		rec.Kind = types.KindUnknown
		rec.Payload = types.Unknown{Data: bytes.Clone(c.Data)}
	default:
		name := "none"
		if c != nil {
			name = c.Name()
		}
		return types.Record{}, &types.UnsupportedContentError{ID: f.ID, Content: name}
	}

	return rec, nil
}

// ToContent builds the content a record describes. The kind is validated
// before the payload is looked at. Binary payloads are copied.
func ToContent(rec types.Record) (id3v2.Content, error) {
	if !rec.Kind.Valid() {
		return nil, &types.UnsupportedKindError{Kind: rec.Kind}
	}
	if rec.Payload == nil {
		return nil, &types.MissingFieldError{Kind: rec.Kind, Field: "payload"}
	}

	switch rec.Kind {
	case types.KindText:
		s, ok := rec.Payload.(types.String)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.Text{Value: string(s)}, nil

	case types.KindLink:
		s, ok := rec.Payload.(types.String)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.Link{URL: string(s)}, nil

	case types.KindExtendedText:
		p, ok := rec.Payload.(types.ExtendedText)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.ExtendedText{Description: p.Description, Value: p.Value}, nil

	case types.KindExtendedLink:
		p, ok := rec.Payload.(types.ExtendedLink)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.ExtendedLink{Description: p.Description, URL: p.Link}, nil

	case types.KindComment:
		p, ok := rec.Payload.(types.Comment)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		lang, err := normalizeLang(rec.Kind, p.Lang)
		if err != nil {
			return nil, err
		}
		return id3v2.Comment{Lang: lang, Description: p.Description, Text: p.Text}, nil

	case types.KindLyrics:
		p, ok := rec.Payload.(types.Lyrics)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		lang, err := normalizeLang(rec.Kind, p.Lang)
		if err != nil {
			return nil, err
		}
		return id3v2.Lyrics{Lang: lang, Description: p.Description, Text: p.Text}, nil

	case types.KindPicture:
		p, ok := rec.Payload.(types.Picture)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.Picture{
			MIMEType:    p.MIMEType,
			Type:        byte(p.PictureType.Normalize()),
			Description: p.Description,
			Data:        bytes.Clone(p.Data),
		}, nil

	case types.KindEncapsulatedObject:
		p, ok := rec.Payload.(types.EncapsulatedObject)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.EncapsulatedObject{
			MIMEType:    p.MIMEType,
			Filename:    p.Filename,
			Description: p.Description,
			Data:        bytes.Clone(p.Data),
		}, nil

	default: // types.KindUnknown
		p, ok := rec.Payload.(types.Unknown)
		if !ok {
			return nil, payloadMismatch(rec)
		}
		return id3v2.Unknown{Data: bytes.Clone(p.Data)}, nil
	}
}

// ToFrame builds the frame a record describes, resolving its frame id.
func ToFrame(rec types.Record) (id3v2.Frame, error) {
	content, err := ToContent(rec)
	if err != nil {
		return id3v2.Frame{}, err
	}
	id, err := ResolveID(rec)
	if err != nil {
		return id3v2.Frame{}, err
	}
	return id3v2.Frame{ID: id, Content: content}, nil
}

// ResolveID returns the frame id a record is stored under.
//
// Kinds with a canonical id use it when the record leaves the id empty and
// reject any other id. text requires a T*** id and link a W*** id, other
// than TXXX and WXXX.
func ResolveID(rec types.Record) (string, error) {
	if !rec.Kind.Valid() {
		return "", &types.UnsupportedKindError{Kind: rec.Kind}
	}

	if want, ok := canonicalID[rec.Kind]; ok {
		if rec.ID != "" && rec.ID != want {
			return "", &types.InvalidFieldError{
				Kind:   rec.Kind,
				Field:  "id",
				Reason: fmt.Sprintf("must be %s, got %q", want, rec.ID),
			}
		}
		return want, nil
	}

	if rec.ID == "" {
		return "", &types.MissingFieldError{Kind: rec.Kind, Field: "id"}
	}
	if !id3v2.ValidID(rec.ID) {
		return "", &types.InvalidFieldError{
			Kind:   rec.Kind,
			Field:  "id",
			Reason: fmt.Sprintf("%q is not four characters from A-Z0-9", rec.ID),
		}
	}

	switch rec.Kind {
	case types.KindText:
		if !strings.HasPrefix(rec.ID, "T") || rec.ID == "TXXX" {
			return "", &types.InvalidFieldError{
				Kind:   rec.Kind,
				Field:  "id",
				Reason: fmt.Sprintf("%q is not a text frame id", rec.ID),
			}
		}
	case types.KindLink:
		if !strings.HasPrefix(rec.ID, "W") || rec.ID == "WXXX" {
			return "", &types.InvalidFieldError{
				Kind:   rec.Kind,
				Field:  "id",
				Reason: fmt.Sprintf("%q is not a link frame id", rec.ID),
			}
		}
	case types.KindUnknown:
		if !id3v2.Opaque(rec.ID) {
			return "", &types.InvalidFieldError{
				Kind:   rec.Kind,
				Field:  "id",
				Reason: fmt.Sprintf("%s frames have a structured body", rec.ID),
			}
		}
	}
	return rec.ID, nil
}

func normalizeLang(kind types.Kind, lang string) (string, error) {
	if lang == "" {
		return DefaultLang, nil
	}
	if _, err := id3v2.LangBytes(lang); err != nil {
		return "", &types.InvalidFieldError{
			Kind:   kind,
			Field:  "lang",
			Reason: err.Error(),
		}
	}
	return lang, nil
}

func payloadMismatch(rec types.Record) error {
	return &types.MissingFieldError{
		Kind:  rec.Kind,
		Field: fmt.Sprintf("payload (got %T)", rec.Payload),
	}
}
