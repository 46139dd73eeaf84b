package types

// PictureType categorizes the purpose of an attached picture.
//
// Values follow the ID3v2 APIC picture type byte.
// See: https://id3.org/id3v2.4.0-frames (APIC frame)
type PictureType uint8

const (
	PictureOther              PictureType = iota // Other
	PictureFileIcon                              // 32x32 pixels 'file icon' (PNG only)
	PictureOtherFileIcon                         // Other file icon
	PictureFrontCover                            // Cover (front)
	PictureBackCover                             // Cover (back)
	PictureLeaflet                               // Leaflet page
	PictureMedia                                 // Media (e.g. label side of CD)
	PictureLeadArtist                            // Lead artist/lead performer/soloist
	PictureArtist                                // Artist/performer
	PictureConductor                             // Conductor
	PictureBand                                  // Band/Orchestra
	PictureComposer                              // Composer
	PictureLyricist                              // Lyricist/text writer
	PictureRecordingLocation                     // Recording Location
	PictureDuringRecording                       // During recording
	PictureDuringPerformance                     // During performance
	PictureScreenCapture                         // Movie/video screen capture
	PictureBrightFish                            // A bright coloured fish
	PictureIllustration                          // Illustration
	PictureBandLogotype                          // Band/artist logotype
	PicturePublisherLogotype                     // Publisher/Studio logotype
)

var pictureTypeNames = [...]string{
	"Other",
	"File icon",
	"Other file icon",
	"Front cover",
	"Back cover",
	"Leaflet page",
	"Media",
	"Lead artist",
	"Artist",
	"Conductor",
	"Band",
	"Composer",
	"Lyricist",
	"Recording location",
	"During recording",
	"During performance",
	"Screen capture",
	"Bright coloured fish",
	"Illustration",
	"Band logotype",
	"Publisher logotype",
}

// Valid reports whether p is one of the defined picture types.
func (p PictureType) Valid() bool {
	return int(p) < len(pictureTypeNames)
}

// Normalize maps undefined values to PictureOther.
func (p PictureType) Normalize() PictureType {
	if !p.Valid() {
		return PictureOther
	}
	return p
}

func (p PictureType) String() string {
	if !p.Valid() {
		return "Unknown picture type"
	}
	return pictureTypeNames[p]
}
