package id3v2

// Content is the decoded body of a frame.
//
// The set of implementations is closed. Text, ExtendedText, Link,
// ExtendedLink, Comment, Lyrics, Picture, EncapsulatedObject and Unknown
// are the general purpose variants; the rest model frames with a fixed
// binary layout.
type Content interface {
	// Name identifies the variant in errors and logs.
	Name() string
	content()
}

// Text is the body of a T*** frame. ID3v2.4 allows several values; they
// are kept separated by NUL.
type Text struct {
	Value string
}

// ExtendedText is the body of a TXXX frame.
type ExtendedText struct {
	Description string
	Value       string
}

// Link is the body of a W*** frame.
type Link struct {
	URL string
}

// ExtendedLink is the body of a WXXX frame.
type ExtendedLink struct {
	Description string
	URL         string
}

// Comment is the body of a COMM frame.
type Comment struct {
	Lang        string
	Description string
	Text        string
}

// Lyrics is the body of a USLT frame.
type Lyrics struct {
	Lang        string
	Description string
	Text        string
}

// Picture is the body of an APIC frame.
type Picture struct {
	MIMEType    string
	Type        byte
	Description string
	Data        []byte
}

// EncapsulatedObject is the body of a GEOB frame.
type EncapsulatedObject struct {
	MIMEType    string
	Filename    string
	Description string
	Data        []byte
}

// Unknown is the raw body of a frame with no dedicated decoder.
type Unknown struct {
	Data []byte
}

// Popularimeter is the body of a POPM frame.
type Popularimeter struct {
	Email   string
	Rating  byte
	Counter uint64
}

// UniqueFileIdentifier is the body of a UFID frame.
type UniqueFileIdentifier struct {
	Owner      string
	Identifier []byte
}

// Private is the body of a PRIV frame.
type Private struct {
	Owner string
	Data  []byte
}

// SyncedText is one timed line of a SYLT frame.
type SyncedText struct {
	Timestamp uint32
	Text      string
}

// SynchronisedLyrics is the body of a SYLT frame.
type SynchronisedLyrics struct {
	Lang            string
	TimestampFormat byte
	ContentType     byte
	Description     string
	Lines           []SyncedText
}

// Chapter is the body of a CHAP frame. Times are in milliseconds; offsets
// are 0xFFFFFFFF when unused.
type Chapter struct {
	ElementID   string
	StartTime   uint32
	EndTime     uint32
	StartOffset uint32
	EndOffset   uint32
	Frames      []Frame
}

// TableOfContents is the body of a CTOC frame.
type TableOfContents struct {
	ElementID string
	TopLevel  bool
	Ordered   bool
	Children  []string
	Frames    []Frame
}

// MpegLocationLookupTable is the body of an MLLT frame. Deviations holds
// the packed reference bits as stored.
type MpegLocationLookupTable struct {
	FramesBetweenReference uint16
	BytesBetweenReference  uint32
	MillisBetweenReference uint32
	BitsForBytesDeviation  byte
	BitsForMillisDeviation byte
	Deviations             []byte
}

func (Text) Name() string                    { return "text" }
func (ExtendedText) Name() string            { return "extended text" }
func (Link) Name() string                    { return "link" }
func (ExtendedLink) Name() string            { return "extended link" }
func (Comment) Name() string                 { return "comment" }
func (Lyrics) Name() string                  { return "lyrics" }
func (Picture) Name() string                 { return "picture" }
func (EncapsulatedObject) Name() string      { return "encapsulated object" }
func (Unknown) Name() string                 { return "unknown" }
func (Popularimeter) Name() string           { return "popularimeter" }
func (UniqueFileIdentifier) Name() string    { return "unique file identifier" }
func (Private) Name() string                 { return "private" }
func (SynchronisedLyrics) Name() string      { return "synchronised lyrics" }
func (Chapter) Name() string                 { return "chapter" }
func (TableOfContents) Name() string         { return "table of contents" }
func (MpegLocationLookupTable) Name() string { return "mpeg location lookup table" }

func (Text) content()                    {}
func (ExtendedText) content()            {}
func (Link) content()                    {}
func (ExtendedLink) content()            {}
func (Comment) content()                 {}
func (Lyrics) content()                  {}
func (Picture) content()                 {}
func (EncapsulatedObject) content()      {}
func (Unknown) content()                 {}
func (Popularimeter) content()           {}
func (UniqueFileIdentifier) content()    {}
func (Private) content()                 {}
func (SynchronisedLyrics) content()      {}
func (Chapter) content()                 {}
func (TableOfContents) content()         {}
func (MpegLocationLookupTable) content() {}
