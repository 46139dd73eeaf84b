package id3v2

import (
	"bytes"
	"reflect"
	"testing"
)

func allVariants() []Frame {
	return []Frame{
		{"TIT2", Text{Value: "Título"}},
		{"TCON", Text{Value: "Rock\x00Jazz"}},
		{"TXXX", ExtendedText{Description: "MOOD", Value: "calm"}},
		{"WOAR", Link{URL: "http://a.example/"}},
		{"WXXX", ExtendedLink{Description: "shop", URL: "http://s.example/"}},
		{"COMM", Comment{Lang: "eng", Description: "", Text: "nice"}},
		{"USLT", Lyrics{Lang: "deu", Description: "v1", Text: "la\nla"}},
		{"APIC", Picture{MIMEType: "image/png", Type: 3, Description: "front", Data: pngData}},
		{"APIC", Picture{MIMEType: "image/png", Type: 3, Description: "front 2", Data: []byte{1}}},
		{"GEOB", EncapsulatedObject{MIMEType: "text/plain", Filename: "n.txt", Description: "notes", Data: []byte("hi")}},
		{"XYZW", Unknown{Data: []byte{0, 1, 2}}},
		{"POPM", Popularimeter{Email: "a@b.c", Rating: 196, Counter: 1 << 40}},
		{"UFID", UniqueFileIdentifier{Owner: "owner", Identifier: []byte("id")}},
		{"PRIV", Private{Owner: "com.example", Data: []byte{9}}},
		{"SYLT", SynchronisedLyrics{Lang: "eng", TimestampFormat: 2, ContentType: 1, Description: "d",
			Lines: []SyncedText{{Timestamp: 10, Text: "a"}, {Timestamp: 20, Text: "b"}}}},
		{"CHAP", Chapter{ElementID: "ch1", StartTime: 0, EndTime: 1000, StartOffset: 0xFFFFFFFF, EndOffset: 0xFFFFFFFF,
			Frames: []Frame{{"TIT2", Text{Value: "One"}}}}},
		{"CTOC", TableOfContents{ElementID: "toc", TopLevel: true, Children: []string{"ch1"}}},
		{"MLLT", MpegLocationLookupTable{FramesBetweenReference: 1, BytesBetweenReference: 417,
			MillisBetweenReference: 26, BitsForBytesDeviation: 4, BitsForMillisDeviation: 4, Deviations: []byte{0x12}}},
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tag := NewTag()
	for _, f := range allVariants() {
		tag.Add(f)
	}

	var buf bytes.Buffer
	if _, err := Encode(&buf, tag, 64); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got, err := decodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Version != Version4 {
		t.Errorf("Version = %d, want 4", got.Version)
	}

	want := allVariants()
	frames := got.Frames()
	if len(frames) != len(want) {
		t.Fatalf("got %d frames, want %d", len(frames), len(want))
	}
	for i := range want {
		if !reflect.DeepEqual(frames[i], want[i]) {
			t.Errorf("frame %d = %#v, want %#v", i, frames[i], want[i])
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	tag := NewTag()
	tag.Add(Frame{ID: "TIT2", Content: Text{Value: "Hi"}})

	var buf bytes.Buffer
	n, err := Encode(&buf, tag, 4)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := concat(
		[]byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 17},
		[]byte{'T', 'I', 'T', '2', 0, 0, 0, 3, 0, 0, 3, 'H', 'i'},
		[]byte{0, 0, 0, 0},
	)
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Encode() = %x\nwant       %x", buf.Bytes(), want)
	}
	if n != int64(len(want)) {
		t.Errorf("Encode() n = %d, want %d", n, len(want))
	}
}

func TestEncode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		frame Frame
	}{
		{"invalid id", Frame{"tit2", Text{Value: "x"}}},
		{"url outside latin1", Frame{"WOAR", Link{URL: "http://例え.jp"}}},
		{"mime outside latin1", Frame{"APIC", Picture{MIMEType: "画像/png"}}},
		{"short language", Frame{"COMM", Comment{Lang: "en"}}},
		{"long language", Frame{"USLT", Lyrics{Lang: "english"}}},
		{"two accented characters", Frame{"COMM", Comment{Lang: "éa"}}},
		{"language outside latin1", Frame{"COMM", Comment{Lang: "日本語"}}},
		{"nil content", Frame{"TIT2", nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := NewTag()
			tag.Add(tt.frame)
			if _, err := Encode(&bytes.Buffer{}, tag, 0); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Encode(&bytes.Buffer{}, NewTag(), -1); err == nil {
		t.Error("negative padding should fail")
	}
}

func TestEncode_EmptyTag(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Encode(&buf, NewTag(), 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tag, err := decodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if tag.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tag.Len())
	}
}

func TestFingerprint(t *testing.T) {
	// The same content stored as ID3v2.3 UTF-16 with padding and as
	// ID3v2.4 UTF-8 without padding fingerprints the same.
	v3 := buildTag(3, 0, concat(
		v3Frame("TIT2", 0, concat([]byte{1}, utf16BOM("Song"))),
		v3Frame("COMM", 0, []byte("\x00engd\x00text")),
		make([]byte, 100),
	))
	old, err := decodeBytes(v3)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := Encode(&buf, old, 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	rewritten, err := decodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	a, err := FingerprintOf(old)
	if err != nil {
		t.Fatal(err)
	}
	b, err := FingerprintOf(rewritten)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("fingerprints differ: %s != %s", a, b)
	}

	rewritten.Add(Frame{ID: "TPE1", Content: Text{Value: "Artist"}})
	c, err := FingerprintOf(rewritten)
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("adding a frame should change the fingerprint")
	}
	if len(c.String()) != 64 {
		t.Errorf("String() = %q, want 64 hex chars", c.String())
	}
}

func TestTag_Mutation(t *testing.T) {
	tag := NewTag()
	tag.Add(Frame{"TIT2", Text{Value: "a"}})
	tag.Add(Frame{"APIC", Picture{Type: 3}})
	tag.Add(Frame{"TIT2", Text{Value: "b"}})
	tag.Add(Frame{"APIC", Picture{Type: 4}})

	frames := tag.Frames()
	frames[0].ID = "XXXX"
	if tag.Frames()[0].ID != "TIT2" {
		t.Error("Frames() should return a copy")
	}

	if n := tag.RemoveID("TIT2"); n != 2 {
		t.Errorf("RemoveID removed %d, want 2", n)
	}

	n := tag.RemoveFunc(func(f Frame) bool {
		p, ok := f.Content.(Picture)
		return ok && p.Type == 3
	})
	if n != 1 {
		t.Errorf("RemoveFunc removed %d, want 1", n)
	}

	left := tag.Frames()
	if len(left) != 1 || left[0].Content.(Picture).Type != 4 {
		t.Errorf("remaining frames = %#v", left)
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"TIT2", "APIC", "TXXX", "XYZ9", "0000"} {
		if !ValidID(id) {
			t.Errorf("ValidID(%q) = false", id)
		}
	}
	for _, id := range []string{"", "TIT", "TIT22", "tit2", "TI T", "TIT\x00"} {
		if ValidID(id) {
			t.Errorf("ValidID(%q) = true", id)
		}
	}
}

func TestEncode_LanguageIsLatin1(t *testing.T) {
	tag := NewTag()
	tag.Add(Frame{"COMM", Comment{Lang: "ééé", Description: "d", Text: "t"}})

	var buf bytes.Buffer
	if _, err := Encode(&buf, tag, 0); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte{0xE9, 0xE9, 0xE9, 'd', 0}) {
		t.Errorf("language not written as three ISO-8859-1 bytes: %x", buf.Bytes())
	}

	got, err := decodeBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := Comment{Lang: "ééé", Description: "d", Text: "t"}
	if c := got.Frames()[0].Content; c != want {
		t.Errorf("decoded %#v, want %#v", c, want)
	}
}

func TestLangBytes(t *testing.T) {
	tests := []struct {
		in      string
		want    [3]byte
		wantErr bool
	}{
		{"eng", [3]byte{'e', 'n', 'g'}, false},
		{"XXX", [3]byte{'X', 'X', 'X'}, false},
		{"ééé", [3]byte{0xE9, 0xE9, 0xE9}, false},
		{"éa", [3]byte{}, true},
		{"en", [3]byte{}, true},
		{"日本語", [3]byte{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LangBytes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LangBytes(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LangBytes(%q) = %x, want %x", tt.in, got, tt.want)
			}
		})
	}
}
