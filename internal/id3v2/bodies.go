package id3v2

import (
	"bytes"
	"fmt"
	"strings"

	binutil "github.com/simonhull/tagframe/internal/binary"
)

// dedicated lists the ids with a body decoder other than Unknown, besides
// the T*** and W*** families.
var dedicated = map[string]bool{
	"COMM": true, "USLT": true, "APIC": true, "GEOB": true, "POPM": true,
	"UFID": true, "PRIV": true, "SYLT": true, "CHAP": true, "CTOC": true,
	"MLLT": true,
}

// Opaque reports whether frames with this id decode to Unknown.
func Opaque(id string) bool {
	return !strings.HasPrefix(id, "T") && !strings.HasPrefix(id, "W") && !dedicated[id]
}

// decodeBody dispatches on the frame id. off is the file offset of body
// and is only used for error reporting.
func (d *decoder) decodeBody(id string, body []byte, off int64) (Content, error) {
	var (
		content Content
		err     error
	)

	switch {
	case id == "TXXX":
		content, err = decodeExtendedText(body)
	case strings.HasPrefix(id, "T"):
		content, err = decodeText(body)
	case id == "WXXX":
		content, err = decodeExtendedLink(body)
	case strings.HasPrefix(id, "W"):
		content, err = decodeLink(body)
	case id == "COMM":
		var c Comment
		c.Lang, c.Description, c.Text, err = decodeLangText(body, id)
		content = c
	case id == "USLT":
		var l Lyrics
		l.Lang, l.Description, l.Text, err = decodeLangText(body, id)
		content = l
	case id == "APIC":
		content, err = decodePicture(body)
	case id == "GEOB":
		content, err = decodeObject(body)
	case id == "POPM":
		content, err = decodePopularimeter(body)
	case id == "UFID":
		var owner, rest []byte
		owner, rest, err = ownerAndData(body, id)
		content = UniqueFileIdentifier{Owner: latin1String(owner), Identifier: rest}
	case id == "PRIV":
		var owner, rest []byte
		owner, rest, err = ownerAndData(body, id)
		content = Private{Owner: latin1String(owner), Data: rest}
	case id == "SYLT":
		content, err = decodeSyncedLyrics(body)
	case id == "CHAP":
		content, err = d.decodeChapter(body, off)
	case id == "CTOC":
		content, err = d.decodeTOC(body, off)
	case id == "MLLT":
		content, err = decodeLookupTable(body)
	default:
		content = Unknown{Data: body}
	}

	if err != nil {
		return nil, d.corrupt(off, "frame %s: %v", id, err)
	}
	return content, nil
}

// decodeText parses T*** frames.
// Format: [encoding][text]
func decodeText(body []byte) (Content, error) {
	if len(body) == 0 {
		return Text{}, nil
	}
	s, err := decodeTextList(body[0], body[1:])
	if err != nil {
		return nil, err
	}
	return Text{Value: s}, nil
}

// decodeExtendedText parses TXXX frames.
// Format: [encoding][description\0][value]
func decodeExtendedText(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "TXXX")
	enc := c.Byte("encoding")
	if err := c.Err(); err != nil {
		return nil, err
	}
	desc, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}
	value, err := decodeFinal(enc, c.Rest())
	if err != nil {
		return nil, err
	}
	return ExtendedText{Description: desc, Value: value}, nil
}

// decodeLink parses W*** frames.
// Format: [url]
func decodeLink(body []byte) (Content, error) {
	url, err := decodeFinal(encodingLatin1, body)
	if err != nil {
		return nil, err
	}
	return Link{URL: url}, nil
}

// decodeExtendedLink parses WXXX frames.
// Format: [encoding][description\0][url]
func decodeExtendedLink(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "WXXX")
	enc := c.Byte("encoding")
	if err := c.Err(); err != nil {
		return nil, err
	}
	desc, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}
	url, err := decodeFinal(encodingLatin1, c.Rest())
	if err != nil {
		return nil, err
	}
	return ExtendedLink{Description: desc, URL: url}, nil
}

// decodeLangText parses COMM and USLT frames.
// Format: [encoding][language(3)][description\0][text]
func decodeLangText(body []byte, id string) (lang, desc, text string, err error) {
	c := binutil.NewCursor(body, id)
	enc := c.Byte("encoding")
	langBytes := c.Next(3, "language")
	if err = c.Err(); err != nil {
		return "", "", "", err
	}
	lang = latin1String(langBytes)
	if desc, err = decodeString(enc, c.Until(terminator(enc))); err != nil {
		return "", "", "", err
	}
	if text, err = decodeFinal(enc, c.Rest()); err != nil {
		return "", "", "", err
	}
	return lang, desc, text, nil
}

// decodePicture parses APIC frames.
// Format:
//
//	[1 byte]              Text encoding
//	[null-terminated]     MIME type
//	[1 byte]              Picture type
//	[null-terminated]     Description
//	[remaining]           Picture data
func decodePicture(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "APIC")
	enc := c.Byte("encoding")
	if err := c.Err(); err != nil {
		return nil, err
	}
	mime := latin1String(c.Until([]byte{0}))
	typ := c.Byte("picture type")
	if err := c.Err(); err != nil {
		return nil, err
	}
	desc, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}
	return Picture{
		MIMEType:    mime,
		Type:        typ,
		Description: desc,
		Data:        c.Rest(),
	}, nil
}

// decodeObject parses GEOB frames.
// Format: [encoding][MIME type\0][filename\0][description\0][data]
func decodeObject(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "GEOB")
	enc := c.Byte("encoding")
	if err := c.Err(); err != nil {
		return nil, err
	}
	mime := latin1String(c.Until([]byte{0}))
	filename, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}
	desc, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}
	return EncapsulatedObject{
		MIMEType:    mime,
		Filename:    filename,
		Description: desc,
		Data:        c.Rest(),
	}, nil
}

// decodePopularimeter parses POPM frames.
// Format: [email\0][rating][counter, 0 or more bytes]
func decodePopularimeter(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "POPM")
	email := latin1String(c.Until([]byte{0}))
	rating := c.Byte("rating")
	if err := c.Err(); err != nil {
		return nil, err
	}
	counterBytes := c.Rest()
	if len(counterBytes) > 8 {
		return nil, fmt.Errorf("counter of %d bytes overflows", len(counterBytes))
	}
	var counter uint64
	for _, b := range counterBytes {
		counter = counter<<8 | uint64(b)
	}
	return Popularimeter{Email: email, Rating: rating, Counter: counter}, nil
}

// ownerAndData parses UFID and PRIV frames.
// Format: [owner\0][data]
func ownerAndData(body []byte, id string) (owner, data []byte, err error) {
	i := bytes.IndexByte(body, 0)
	if i < 0 {
		return nil, nil, fmt.Errorf("%s owner not null-terminated", id)
	}
	return body[:i], body[i+1:], nil
}

// decodeSyncedLyrics parses SYLT frames.
// Format: [encoding][language(3)][timestamp format][content type]
// [description\0] then repeated [text\0][timestamp(4)]
func decodeSyncedLyrics(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "SYLT")
	enc := c.Byte("encoding")
	lang := c.Next(3, "language")
	format := c.Byte("timestamp format")
	ctype := c.Byte("content type")
	if err := c.Err(); err != nil {
		return nil, err
	}
	desc, err := decodeString(enc, c.Until(terminator(enc)))
	if err != nil {
		return nil, err
	}

	s := SynchronisedLyrics{
		Lang:            latin1String(lang),
		TimestampFormat: format,
		ContentType:     ctype,
		Description:     desc,
	}
	for c.Len() > 0 {
		text, err := decodeString(enc, c.Until(terminator(enc)))
		if err != nil {
			return nil, err
		}
		ts := binutil.Value[uint32](c, "timestamp")
		if err := c.Err(); err != nil {
			return nil, err
		}
		s.Lines = append(s.Lines, SyncedText{Timestamp: ts, Text: text})
	}
	return s, nil
}

// decodeChapter parses CHAP frames.
// Format:
//
//	[element_id\0][start_time(4)][end_time(4)][start_offset(4)][end_offset(4)][subframes...]
func (d *decoder) decodeChapter(body []byte, off int64) (Content, error) {
	c := binutil.NewCursor(body, "CHAP")
	elementID := latin1String(c.Until([]byte{0}))
	ch := Chapter{
		ElementID:   elementID,
		StartTime:   binutil.Value[uint32](c, "start time"),
		EndTime:     binutil.Value[uint32](c, "end time"),
		StartOffset: binutil.Value[uint32](c, "start offset"),
		EndOffset:   binutil.Value[uint32](c, "end offset"),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	sub := c.Offset()
	frames, err := d.frames(c.Rest(), off+int64(sub))
	if err != nil {
		return nil, err
	}
	ch.Frames = frames
	return ch, nil
}

// decodeTOC parses CTOC frames.
// Format: [element_id\0][flags][entry count][child ids\0...][subframes...]
func (d *decoder) decodeTOC(body []byte, off int64) (Content, error) {
	c := binutil.NewCursor(body, "CTOC")
	toc := TableOfContents{ElementID: latin1String(c.Until([]byte{0}))}
	flags := c.Byte("flags")
	count := c.Byte("entry count")
	if err := c.Err(); err != nil {
		return nil, err
	}
	toc.TopLevel = flags&0x02 != 0
	toc.Ordered = flags&0x01 != 0

	for n := byte(0); n < count; n++ {
		if c.Len() == 0 {
			return nil, fmt.Errorf("CTOC declares %d entries, found %d", count, len(toc.Children))
		}
		toc.Children = append(toc.Children, latin1String(c.Until([]byte{0})))
	}

	sub := c.Offset()
	frames, err := d.frames(c.Rest(), off+int64(sub))
	if err != nil {
		return nil, err
	}
	toc.Frames = frames
	return toc, nil
}

// decodeLookupTable parses MLLT frames.
// Format: [frames(2)][bytes(3)][millis(3)][bits for bytes][bits for millis][deviations]
func decodeLookupTable(body []byte) (Content, error) {
	c := binutil.NewCursor(body, "MLLT")
	t := MpegLocationLookupTable{
		FramesBetweenReference: binutil.Value[uint16](c, "frames between reference"),
		BytesBetweenReference:  uint24(c.Next(3, "bytes between reference")),
		MillisBetweenReference: uint24(c.Next(3, "milliseconds between reference")),
		BitsForBytesDeviation:  c.Byte("bits for bytes deviation"),
		BitsForMillisDeviation: c.Byte("bits for milliseconds deviation"),
	}
	if err := c.Err(); err != nil {
		return nil, err
	}
	t.Deviations = c.Rest()
	return t, nil
}

func uint24(b []byte) uint32 {
	if len(b) != 3 {
		return 0
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// latin1String converts ISO-8859-1 bytes; every byte maps to the code
// point of the same value, so this cannot fail.
func latin1String(b []byte) string {
	s, _ := decodeString(encodingLatin1, b)
	return s
}
