package transform

import (
	"fmt"
	"strconv"
	"strings"

	"batchpix/internal/media"
)

// Extension is the extension override of a rename template.
type Extension string

const (
	ExtKeep Extension = "keep"
	ExtJPG  Extension = "jpg"
	ExtJPEG Extension = "jpeg"
	ExtPNG  Extension = "png"
	ExtWebP Extension = "webp"
	ExtGIF  Extension = "gif"
)

// Extensions lists the accepted overrides in display order.
var Extensions = []Extension{ExtKeep, ExtJPG, ExtJPEG, ExtPNG, ExtWebP, ExtGIF}

// ParseExtension validates an override. The empty string means keep.
func ParseExtension(s string) (Extension, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "" {
		return ExtKeep, nil
	}
	for _, ext := range Extensions {
		if string(ext) == s {
			return ext, nil
		}
	}
	return "", fmt.Errorf("unknown extension %q", s)
}

const (
	maxCounterPadding = 10
)

// Template describes how renamed files are named.
type Template struct {
	BaseName       string
	AddCounter     bool
	CounterStart   int
	CounterPadding int
	Extension      Extension
}

// Normalize clamps the numeric fields into their documented ranges.
func (t Template) Normalize() Template {
	if t.CounterStart < 0 {
		t.CounterStart = 0
	}
	if t.CounterPadding < 1 {
		t.CounterPadding = 1
	}
	if t.CounterPadding > maxCounterPadding {
		t.CounterPadding = maxCounterPadding
	}
	if t.Extension == "" {
		t.Extension = ExtKeep
	}
	return t
}

// Name derives the new name for the file at index in a batch.
func (t Template) Name(index int, original string) string {
	t = t.Normalize()

	ext := string(t.Extension)
	if t.Extension == ExtKeep {
		ext = ""
		if i := strings.LastIndexByte(original, '.'); i >= 0 {
			ext = original[i+1:]
		}
	}

	var b strings.Builder
	b.WriteString(t.BaseName)
	if t.AddCounter {
		counter := strconv.Itoa(t.CounterStart + index)
		b.WriteByte('_')
		if pad := t.CounterPadding - len(counter); pad > 0 {
			b.WriteString(strings.Repeat("0", pad))
		}
		b.WriteString(counter)
	}
	b.WriteByte('.')
	b.WriteString(ext)
	return b.String()
}

// Apply renames src as the file at index. Bytes and media type are kept.
func (t Template) Apply(index int, src media.SourceFile) media.SourceFile {
	return media.SourceFile{
		Name:      t.Name(index, src.Name),
		MediaType: src.MediaType,
		Data:      src.Data,
	}
}

// RenameResult pairs a renamed file with the name it had before.
type RenameResult struct {
	File         media.SourceFile
	OriginalName string
}

// RenameBatch renames files in order. Names are not deduplicated.
func RenameBatch(files []media.SourceFile, t Template) []RenameResult {
	out := make([]RenameResult, 0, len(files))
	for i, f := range files {
		out = append(out, RenameResult{File: t.Apply(i, f), OriginalName: f.Name})
	}
	return out
}
