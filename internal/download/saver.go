// Package download saves transformed files to the user's local storage.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"batchpix/internal/media"
)

// Saver is the "save bytes as a file" capability of the host.
type Saver interface {
	Save(ctx context.Context, f media.SourceFile) (string, error)
}

// DirSaver writes files into Dir. A name that already exists in Dir gets a
// " (n)" suffix, the way browsers number repeated downloads.
type DirSaver struct {
	Dir string

	mu sync.Mutex
}

func NewDirSaver(dir string) *DirSaver {
	return &DirSaver{Dir: dir}
}

func (s *DirSaver) Save(ctx context.Context, f media.SourceFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(s.Dir) == "" {
		return "", errors.New("output directory is required")
	}

	name := sanitizeName(f.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.Dir, "batchpix-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(f.Data); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return "", err
	}
	if err := tmpFile.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmpFile.Name(), 0o644); err != nil {
		return "", err
	}

	destPath, err := s.freePath(name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmpFile.Name(), destPath); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}

	return destPath, nil
}

func (s *DirSaver) freePath(name string) (string, error) {
	candidate := filepath.Join(s.Dir, name)
	stem, ext := media.Stem(name), media.Ext(name)
	for n := 1; ; n++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(s.Dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
	}
}

// sanitizeName keeps only the final path element so a crafted name cannot
// escape the output directory.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	switch name {
	case "", ".", "..", "/":
		return "unnamed"
	}
	return name
}
