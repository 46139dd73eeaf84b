package types

// Kind names the content variant of a Record.
type Kind string

const (
	KindText               Kind = "text"
	KindExtendedText       Kind = "extended text"
	KindLink               Kind = "link"
	KindExtendedLink       Kind = "extended link"
	KindComment            Kind = "comment"
	KindLyrics             Kind = "lyrics"
	KindPicture            Kind = "picture"
	KindEncapsulatedObject Kind = "encapsulated object"
	KindUnknown            Kind = "unknown"
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{
	KindText,
	KindExtendedText,
	KindLink,
	KindExtendedLink,
	KindComment,
	KindLyrics,
	KindPicture,
	KindEncapsulatedObject,
	KindUnknown,
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindExtendedText, KindLink, KindExtendedLink,
		KindComment, KindLyrics, KindPicture, KindEncapsulatedObject, KindUnknown:
		return true
	}
	return false
}

// Structural reports whether frames of this kind are matched by content
// rather than by frame id. Such frames accumulate on add.
func (k Kind) Structural() bool {
	return k == KindPicture || k == KindEncapsulatedObject
}

// Record is the host-facing form of one tag frame.
//
// On read, Remove is always false. On update, Remove selects between
// removing matching frames and adding a new one.
type Record struct {
	Kind    Kind
	ID      string
	Payload Payload
	Remove  bool
}

// Payload is the kind-shaped value of a Record. The set of implementations
// is closed:
//
//	String              text, link
//	ExtendedText        extended text
//	ExtendedLink        extended link
//	Comment             comment
//	Lyrics              lyrics
//	Picture             picture
//	EncapsulatedObject  encapsulated object
//	Unknown             unknown
type Payload interface {
	payload()
}

// String is the payload of text and link records.
type String string

// ExtendedText is a user-defined text value keyed by description.
type ExtendedText struct {
	Value       string
	Description string
}

// ExtendedLink is a user-defined URL keyed by description.
type ExtendedLink struct {
	Description string
	Link        string
}

// Comment is a language-tagged comment.
type Comment struct {
	Lang        string
	Description string
	Text        string
}

// Lyrics is language-tagged unsynchronised lyrics.
type Lyrics struct {
	Lang        string
	Description string
	Text        string
}

// Picture is an attached image.
type Picture struct {
	MIMEType    string
	PictureType PictureType
	Description string
	Data        []byte
}

// EncapsulatedObject is an attached file of any type.
type EncapsulatedObject struct {
	MIMEType    string
	Filename    string
	Description string
	Data        []byte
}

// Unknown carries the raw body of a frame no other kind describes.
type Unknown struct {
	Data []byte
}

func (String) payload()             {}
func (ExtendedText) payload()       {}
func (ExtendedLink) payload()       {}
func (Comment) payload()            {}
func (Lyrics) payload()             {}
func (Picture) payload()            {}
func (EncapsulatedObject) payload() {}
func (Unknown) payload()            {}
