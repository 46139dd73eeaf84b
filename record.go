package tagframe

import (
	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/types"
)

// WriteVersion is the ID3v2 major version of every tag UpdateTag writes.
const WriteVersion = int(id3v2.WriteVersion)

// Record is one tag frame in host-facing form: kind, frame id, payload and
// removal flag.
type Record = types.Record

// Kind names the content variant of a Record.
type Kind = types.Kind

// Payload is the kind-shaped value of a Record.
type Payload = types.Payload

// Payload variants.
type (
	String             = types.String
	ExtendedText       = types.ExtendedText
	ExtendedLink       = types.ExtendedLink
	Comment            = types.Comment
	Lyrics             = types.Lyrics
	Picture            = types.Picture
	EncapsulatedObject = types.EncapsulatedObject
	Unknown            = types.Unknown
)

const (
	KindText               = types.KindText
	KindExtendedText       = types.KindExtendedText
	KindLink               = types.KindLink
	KindExtendedLink       = types.KindExtendedLink
	KindComment            = types.KindComment
	KindLyrics             = types.KindLyrics
	KindPicture            = types.KindPicture
	KindEncapsulatedObject = types.KindEncapsulatedObject
	KindUnknown            = types.KindUnknown
)

// PictureType is the ID3v2 APIC picture type, 0 through 20.
type PictureType = types.PictureType

const (
	PictureOther             = types.PictureOther
	PictureFileIcon          = types.PictureFileIcon
	PictureOtherFileIcon     = types.PictureOtherFileIcon
	PictureFrontCover        = types.PictureFrontCover
	PictureBackCover         = types.PictureBackCover
	PictureLeaflet           = types.PictureLeaflet
	PictureMedia             = types.PictureMedia
	PictureLeadArtist        = types.PictureLeadArtist
	PictureArtist            = types.PictureArtist
	PictureConductor         = types.PictureConductor
	PictureBand              = types.PictureBand
	PictureComposer          = types.PictureComposer
	PictureLyricist          = types.PictureLyricist
	PictureRecordingLocation = types.PictureRecordingLocation
	PictureDuringRecording   = types.PictureDuringRecording
	PictureDuringPerformance = types.PictureDuringPerformance
	PictureScreenCapture     = types.PictureScreenCapture
	PictureBrightFish        = types.PictureBrightFish
	PictureIllustration      = types.PictureIllustration
	PictureBandLogotype      = types.PictureBandLogotype
	PicturePublisherLogotype = types.PicturePublisherLogotype
)
