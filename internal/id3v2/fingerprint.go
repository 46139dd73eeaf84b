package id3v2

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint identifies the content of a tag independent of the version,
// text encodings, flags and padding it was stored with.
type Fingerprint [32]byte

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// FingerprintOf returns the BLAKE3 digest of the canonical ID3v2.4 encoding
// of the tag's frames. Two tags with equal fingerprints hold the same frames
// in the same order.
func FingerprintOf(tag *Tag) (Fingerprint, error) {
	enc, err := EncodeFrames(tag.frames)
	if err != nil {
		return Fingerprint{}, err
	}
	return blake3.Sum256(enc), nil
}
