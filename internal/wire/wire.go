// Package wire encodes Records as the host-facing 4-tuple
// [kind, id, payload, removalFlag].
//
// Payload shape by kind:
//
//	text, link           string
//	extended text        {value, description}
//	extended link        {description, link}
//	comment, lyrics      {lang, description, text}
//	picture              {MIMEType, pictureType, description, data}
//	encapsulated object  {MIMEType, filename, description, data}
//	unknown              {data}
//
// Two encodings share that shape: JSON with binary data as base64 strings,
// and CBOR with binary data as byte strings.
package wire

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/tagframe/internal/types"
)

// Format selects an encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat accepts "json" or "cbor" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCBOR:
		return f, nil
	}
	return "", fmt.Errorf("unknown wire format %q (want json or cbor)", s)
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, f Format, records []types.Record) error {
	switch f {
	case FormatJSON:
		return EncodeJSON(w, records)
	case FormatCBOR:
		return EncodeCBOR(w, records)
	}
	return fmt.Errorf("unknown wire format %q", f)
}

// Decode reads records in the given format from data.
func Decode(data []byte, f Format) ([]types.Record, error) {
	switch f {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatCBOR:
		return DecodeCBOR(data)
	}
	return nil, fmt.Errorf("unknown wire format %q", f)
}

// fields is the union of every structured payload. A nil field is a key the
// sender left out.
type fields struct {
	Value       *string `json:"value,omitempty" cbor:"value,omitempty"`
	Description *string `json:"description,omitempty" cbor:"description,omitempty"`
	Link        *string `json:"link,omitempty" cbor:"link,omitempty"`
	Lang        *string `json:"lang,omitempty" cbor:"lang,omitempty"`
	Text        *string `json:"text,omitempty" cbor:"text,omitempty"`
	MIMEType    *string `json:"MIMEType,omitempty" cbor:"MIMEType,omitempty"`
	PictureType *int    `json:"pictureType,omitempty" cbor:"pictureType,omitempty"`
	Filename    *string `json:"filename,omitempty" cbor:"filename,omitempty"`
	Data        *[]byte `json:"data,omitempty" cbor:"data,omitempty"`
}

// unmarshalFunc decodes one encoded value into v.
type unmarshalFunc func(data []byte, v any) error

// tuple is a decoded 4-tuple whose payload is still encoded. A nil payload
// is an absent or null one.
type tuple struct {
	kind    string
	id      string
	payload []byte
	remove  bool
}

// payloadOf returns the wire value of rec's payload: a string for text and
// link, a *fields otherwise.
func payloadOf(rec types.Record) (any, error) {
	switch p := rec.Payload.(type) {
	case types.String:
		return string(p), nil
	case types.ExtendedText:
		return &fields{Value: &p.Value, Description: &p.Description}, nil
	case types.ExtendedLink:
		return &fields{Description: &p.Description, Link: &p.Link}, nil
	case types.Comment:
		return &fields{Lang: &p.Lang, Description: &p.Description, Text: &p.Text}, nil
	case types.Lyrics:
		return &fields{Lang: &p.Lang, Description: &p.Description, Text: &p.Text}, nil
	case types.Picture:
		typ := int(p.PictureType)
		return &fields{MIMEType: &p.MIMEType, PictureType: &typ, Description: &p.Description, Data: bytesOf(p.Data)}, nil
	case types.EncapsulatedObject:
		return &fields{MIMEType: &p.MIMEType, Filename: &p.Filename, Description: &p.Description, Data: bytesOf(p.Data)}, nil
	case types.Unknown:
		return &fields{Data: bytesOf(p.Data)}, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("%s record: unexpected payload %T", rec.Kind, rec.Payload)
}

// bytesOf never returns a pointer to nil, which both encodings write as null.
func bytesOf(b []byte) *[]byte {
	if b == nil {
		b = []byte{}
	}
	return &b
}

// toRecord shapes a decoded tuple into a Record.
//
// The payload is only required where the edit needs it: id-scoped removals
// ignore it, picture removals need pictureType only, and object removals
// need all four fields they are matched on.
func toRecord(t tuple, unmarshal unmarshalFunc) (types.Record, error) {
	kind := types.Kind(t.kind)
	rec := types.Record{Kind: kind, ID: t.id, Remove: t.remove}

	if !kind.Valid() {
		return types.Record{}, &types.UnsupportedKindError{Kind: kind}
	}
	if t.remove && !kind.Structural() {
		return rec, nil
	}
	if t.payload == nil {
		field := "payload"
		if t.remove && kind == types.KindPicture {
			field = "pictureType"
		}
		return types.Record{}, &types.MissingFieldError{Kind: kind, Field: field}
	}

	if kind == types.KindText || kind == types.KindLink {
		var s string
		if err := unmarshal(t.payload, &s); err != nil {
			return types.Record{}, &types.InvalidFieldError{Kind: kind, Field: "payload", Reason: err.Error()}
		}
		rec.Payload = types.String(s)
		return rec, nil
	}

	var f fields
	if err := unmarshal(t.payload, &f); err != nil {
		return types.Record{}, &types.InvalidFieldError{Kind: kind, Field: "payload", Reason: err.Error()}
	}
	r := requirer{kind: kind}

	switch kind {
	case types.KindExtendedText:
		rec.Payload = types.ExtendedText{
			Value:       r.str(f.Value, "value"),
			Description: r.str(f.Description, "description"),
		}
	case types.KindExtendedLink:
		rec.Payload = types.ExtendedLink{
			Description: r.str(f.Description, "description"),
			Link:        r.str(f.Link, "link"),
		}
	case types.KindComment:
		rec.Payload = types.Comment{
			Lang:        r.str(f.Lang, "lang"),
			Description: r.str(f.Description, "description"),
			Text:        r.str(f.Text, "text"),
		}
	case types.KindLyrics:
		rec.Payload = types.Lyrics{
			Lang:        r.str(f.Lang, "lang"),
			Description: r.str(f.Description, "description"),
			Text:        r.str(f.Text, "text"),
		}
	case types.KindPicture:
		p := types.Picture{PictureType: r.pictureType(f.PictureType)}
		if !t.remove {
			p.MIMEType = r.str(f.MIMEType, "MIMEType")
			p.Description = r.str(f.Description, "description")
			p.Data = r.bytes(f.Data, "data")
		}
		rec.Payload = p
	case types.KindEncapsulatedObject:
		rec.Payload = types.EncapsulatedObject{
			MIMEType:    r.str(f.MIMEType, "MIMEType"),
			Filename:    r.str(f.Filename, "filename"),
			Description: r.str(f.Description, "description"),
			Data:        r.bytes(f.Data, "data"),
		}
	case types.KindUnknown:
		rec.Payload = types.Unknown{Data: r.bytes(f.Data, "data")}
	}

	if r.err != nil {
		return types.Record{}, r.err
	}
	return rec, nil
}

// requirer collects the first missing key.
type requirer struct {
	kind types.Kind
	err  error
}

func (r *requirer) missing(field string) {
	if r.err == nil {
		r.err = &types.MissingFieldError{Kind: r.kind, Field: field}
	}
}

func (r *requirer) str(v *string, field string) string {
	if v == nil {
		r.missing(field)
		return ""
	}
	return *v
}

func (r *requirer) bytes(v *[]byte, field string) []byte {
	if v == nil {
		r.missing(field)
		return nil
	}
	if *v == nil {
		return []byte{}
	}
	return *v
}

// pictureType maps values that do not fit a byte to Other.
func (r *requirer) pictureType(v *int) types.PictureType {
	if v == nil {
		r.missing("pictureType")
		return types.PictureOther
	}
	if *v < 0 || *v > 255 {
		return types.PictureOther
	}
	return types.PictureType(*v)
}
