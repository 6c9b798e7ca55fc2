package download

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"batchpix/internal/media"
)

func TestDirSaverWritesAndNumbersDuplicates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewDirSaver(dir)

	var paths []string
	for _, body := range []string{"one", "two", "three"} {
		p, err := s.Save(context.Background(), media.SourceFile{Name: "img.png", Data: []byte(body)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		paths = append(paths, p)
	}

	want := []string{"img.png", "img (1).png", "img (2).png"}
	for i, p := range paths {
		if filepath.Base(p) != want[i] {
			t.Fatalf("path %d = %s, want %s", i, filepath.Base(p), want[i])
		}
	}

	data, err := os.ReadFile(paths[2])
	if err != nil || string(data) != "three" {
		t.Fatalf("read back: %v %q", err, data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected no temp files left behind, got %d entries", len(entries))
	}
}

func TestDirSaverConfinesNames(t *testing.T) {
	dir := t.TempDir()
	p, err := NewDirSaver(dir).Save(context.Background(), media.SourceFile{Name: "../../etc/evil.jpg", Data: []byte("x")})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(p) != dir || filepath.Base(p) != "evil.jpg" {
		t.Fatalf("unexpected path %s", p)
	}
}

func TestDirSaverRequiresDir(t *testing.T) {
	if _, err := NewDirSaver("").Save(context.Background(), media.SourceFile{Name: "a"}); err == nil {
		t.Fatal("expected error without a directory")
	}
}
