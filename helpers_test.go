package tagframe_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/tagframe/internal/id3v2"
)

// audioBytes stands in for an MPEG stream: a frame sync followed by data
// that must survive every rewrite untouched.
var audioBytes = []byte{0xFF, 0xFB, 0x90, 0x64, 'a', 'u', 'd', 'i', 'o', 0x00, 0x01, 0x02}

// writeFile writes data to name inside a fresh temp directory.
func writeFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// encodeTag encodes frames as an ID3v2.4 tag without padding.
func encodeTag(t testing.TB, frames ...id3v2.Frame) []byte {
	t.Helper()

	tag := id3v2.NewTag()
	for _, f := range frames {
		tag.Add(f)
	}
	var buf bytes.Buffer
	if _, err := id3v2.Encode(&buf, tag, 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf.Bytes()
}

// writeMP3 writes a file holding a tag with frames followed by audioBytes.
func writeMP3(t testing.TB, frames ...id3v2.Frame) string {
	t.Helper()
	return writeFile(t, "song.mp3", append(encodeTag(t, frames...), audioBytes...))
}

// readFile returns the contents of path.
func readFile(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// trailingAudio returns what follows the tag in the file at path.
func trailingAudio(t testing.TB, path string) []byte {
	t.Helper()

	data := readFile(t, path)
	h, err := id3v2.Locate(bytes.NewReader(data), int64(len(data)), path)
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	return data[h.TotalSize():]
}
