// Package media holds the immutable file value that flows through every
// batch operation, plus the naming helpers shared by the transforms.
package media

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"batchpix/pkg/imgutil"
)

const (
	TypeJPEG = "image/jpeg"
	TypePNG  = "image/png"
	TypeGIF  = "image/gif"
	TypeWebP = "image/webp"
	TypeBMP  = "image/bmp"
	TypeTIFF = "image/tiff"
)

// SourceFile is a named byte buffer with a declared media type. Values are
// never modified after construction; transforms return new ones.
type SourceFile struct {
	Name      string
	MediaType string
	Data      []byte
}

// Size is the byte length of the file content.
func (f SourceFile) Size() int64 {
	return int64(len(f.Data))
}

// ReadFile loads path into a SourceFile. The declared type comes from the
// extension when it is recognised and from the leading bytes otherwise.
func ReadFile(path string) (SourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SourceFile{}, fmt.Errorf("read %s: %w", path, err)
	}

	name := filepath.Base(path)
	mediaType := TypeByName(name)
	if mediaType == "" {
		mediaType = imgutil.Sniff(data).MediaType()
	}
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return SourceFile{Name: name, MediaType: mediaType, Data: data}, nil
}

var imageExtensions = map[string]string{
	".jpg":  TypeJPEG,
	".jpeg": TypeJPEG,
	".jfif": TypeJPEG,
	".png":  TypePNG,
	".gif":  TypeGIF,
	".webp": TypeWebP,
	".bmp":  TypeBMP,
	".tif":  TypeTIFF,
	".tiff": TypeTIFF,
}

// TypeByName maps a file name to a media type using its extension.
func TypeByName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := imageExtensions[ext]; ok {
		return t
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// ExtensionForType returns the canonical extension (with the dot) for a
// media type, or "" when the type is not an image type we know.
func ExtensionForType(mediaType string) string {
	switch strings.ToLower(mediaType) {
	case TypeJPEG:
		return ".jpg"
	case TypePNG:
		return ".png"
	case TypeGIF:
		return ".gif"
	case TypeWebP:
		return ".webp"
	case TypeBMP:
		return ".bmp"
	case TypeTIFF:
		return ".tiff"
	default:
		return ""
	}
}

// Stem strips the final extension from name. A trailing dot with nothing
// after it is not an extension, and a leading dot file has an empty stem.
func Stem(name string) string {
	if i := extIndex(name); i >= 0 {
		return name[:i]
	}
	return name
}

// Ext returns the final extension of name including the dot, or "".
func Ext(name string) string {
	if i := extIndex(name); i >= 0 {
		return name[i:]
	}
	return ""
}

func extIndex(name string) int {
	i := strings.LastIndexAny(name, "./")
	if i < 0 || name[i] != '.' || i == len(name)-1 {
		return -1
	}
	return i
}
