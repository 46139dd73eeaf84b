package binary

import (
	"bytes"
	"testing"
)

func TestSynchsafe(t *testing.T) {
	tests := []struct {
		value uint32
		bytes [4]byte
	}{
		{0, [4]byte{0, 0, 0, 0}},
		{127, [4]byte{0, 0, 0, 0x7F}},
		{128, [4]byte{0, 0, 0x01, 0x00}},
		{1024, [4]byte{0, 0, 0x08, 0x00}},
		{MaxSynchsafe, [4]byte{0x7F, 0x7F, 0x7F, 0x7F}},
	}

	for _, tt := range tests {
		got, err := EncodeSynchsafe(tt.value)
		if err != nil {
			t.Fatalf("EncodeSynchsafe(%d): %v", tt.value, err)
		}
		if got != tt.bytes {
			t.Errorf("EncodeSynchsafe(%d) = %v, want %v", tt.value, got, tt.bytes)
		}
		if back := DecodeSynchsafe(got[:]); back != tt.value {
			t.Errorf("DecodeSynchsafe(%v) = %d, want %d", got, back, tt.value)
		}
		if !IsSynchsafe(got[:]) {
			t.Errorf("IsSynchsafe(%v) = false", got)
		}
	}

	if DecodeSynchsafe([]byte{1, 2}) != 0 {
		t.Error("short input should decode to 0")
	}
	if IsSynchsafe([]byte{0x00, 0x80, 0x00, 0x00}) {
		t.Error("high bit set should not be synchsafe")
	}
}

func TestResync(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"no change", []byte{0x01, 0xFF, 0xE0}, []byte{0x01, 0xFF, 0xE0}},
		{"drops inserted zero", []byte{0xFF, 0x00, 0xE0}, []byte{0xFF, 0xE0}},
		{"keeps escaped zero", []byte{0xFF, 0x00, 0x00}, []byte{0xFF, 0x00}},
		{"trailing ff", []byte{0x10, 0xFF}, []byte{0x10, 0xFF}},
		{"repeated", []byte{0xFF, 0x00, 0xFF, 0x00, 0xFF}, []byte{0xFF, 0xFF, 0xFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resync(tt.in); !bytes.Equal(got, tt.want) {
				t.Errorf("Resync(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
