// Package tagframe reads and edits the ID3v2 tag of an audio file as a list
// of generic records.
//
// A host sees a tag as an ordered list of Records. Each Record is a
// 4-tuple of kind, frame id, kind-shaped payload and a removal flag. The
// host sends back a batch of Records, which is merged into the existing
// tag, and the whole tag is rewritten as ID3v2.4.
//
// # Quick Start
//
// Reading a tag:
//
//	records, err := tagframe.LoadTag("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range records {
//		fmt.Printf("%s %s\n", r.Kind, r.ID)
//	}
//
// Editing a tag:
//
//	records, err := tagframe.UpdateTag("song.mp3", []tagframe.Record{
//		{Kind: tagframe.KindText, ID: "TIT2", Payload: tagframe.String("New Title")},
//		{Kind: tagframe.KindPicture, Payload: tagframe.Picture{PictureType: tagframe.PictureBackCover}, Remove: true},
//	})
//
// # Kinds
//
//   - text, link: the payload is a String; the frame id is required
//   - extended text, extended link, comment, lyrics: structured payloads
//     stored under TXXX, WXXX, COMM and USLT
//   - picture, encapsulated object: APIC and GEOB frames
//   - unknown: the raw body of any frame id without a structured layout
//
// # Merge Rules
//
// Edits are applied strictly in order:
//
//   - Adding a picture or encapsulated object appends a new frame.
//   - Adding any other kind first removes every frame with the same id.
//   - Removing a picture removes every picture of that picture type.
//   - Removing an encapsulated object removes every object equal to it on
//     MIME type, filename, description and data.
//   - Removing any other kind removes every frame with that id.
//
// # Writing
//
// Tags are always written as ID3v2.4 with UTF-8 text. The file is written
// to a temporary file next to the original and renamed over it, so a failed
// write leaves the original untouched. See WithBackup, WithValidation,
// WithPreserveModTime and WithPadding.
//
// # Error Handling
//
// Every failure aborts the call and no partial records are returned. Use
// errors.As with the exported error types:
//
//	var unsupported *tagframe.UnsupportedContentError
//	if errors.As(err, &unsupported) {
//		log.Printf("frame %s cannot be represented", unsupported.ID)
//	}
package tagframe
