package media

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStemAndExt(t *testing.T) {
	cases := []struct {
		name string
		stem string
		ext  string
	}{
		{"photo.png", "photo", ".png"},
		{"archive.tar.gz", "archive.tar", ".gz"},
		{"README", "README", ""},
		{"trailing.", "trailing.", ""},
		{".hidden", "", ".hidden"},
		{"dir.v2/file", "dir.v2/file", ""},
	}

	for _, tc := range cases {
		if got := Stem(tc.name); got != tc.stem {
			t.Errorf("Stem(%q) = %q, want %q", tc.name, got, tc.stem)
		}
		if got := Ext(tc.name); got != tc.ext {
			t.Errorf("Ext(%q) = %q, want %q", tc.name, got, tc.ext)
		}
	}
}

func TestTypeByName(t *testing.T) {
	if got := TypeByName("A.JPG"); got != TypeJPEG {
		t.Fatalf("got %q", got)
	}
	if got := TypeByName("scan.tif"); got != TypeTIFF {
		t.Fatalf("got %q", got)
	}
	if got := TypeByName("noext"); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestReadFileSniffsWhenExtensionMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	data := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if f.Name != "blob" || f.MediaType != TypePNG || f.Size() != int64(len(data)) {
		t.Fatalf("unexpected file %+v", f)
	}
}
