package imgutil

import (
	"bytes"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name   string
		header []byte
		want   Kind
	}{
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F'}, KindJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, KindPNG},
		{"gif", []byte("GIF89a\x01\x00"), KindGIF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBP"), KindWebP},
		{"riff without webp", []byte("RIFF\x24\x00\x00\x00WAVE"), KindUnknown},
		{"bmp", []byte("BM\x36\x00\x00\x00\x00\x00"), KindBMP},
		{"tiff", []byte{0x49, 0x49, 0x2a, 0x00, 8, 0, 0, 0}, KindTIFF},
		{"text", []byte("hello, world"), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectHeader(tc.header)
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestSniffReaderShortInput(t *testing.T) {
	kind, err := SniffReader(bytes.NewReader([]byte("GIF89a\x01\x00\x01")))
	if err != nil {
		t.Fatalf("sniff: %v", err)
	}
	if kind != KindGIF {
		t.Fatalf("got %s, want gif", kind)
	}
	if kind.MediaType() != "image/gif" {
		t.Fatalf("unexpected media type %q", kind.MediaType())
	}
}
