package transform

import (
	"bytes"
	"image"

	"batchpix/internal/media"
	"batchpix/pkg/imgutil"
)

// Info describes a source file without transforming it.
type Info struct {
	Name        string
	Declared    string
	Sniffed     imgutil.Kind
	Size        int64
	Width       int
	Height      int
	Orientation Orientation
}

// Probe reads the header of src. Width and Height are as displayed, so they
// are swapped for orientations that rotate by 90 degrees.
func Probe(src media.SourceFile) (Info, error) {
	info := Info{
		Name:     src.Name,
		Declared: src.MediaType,
		Sniffed:  imgutil.Sniff(src.Data),
		Size:     src.Size(),
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(src.Data))
	if err != nil {
		return info, &DecodeError{Name: src.Name, Err: err}
	}

	info.Orientation = ReadOrientation(src.Data)
	info.Width, info.Height = cfg.Width, cfg.Height
	if info.Orientation >= 5 {
		info.Width, info.Height = cfg.Height, cfg.Width
	}
	return info, nil
}

// Dimensions returns the stored pixel size of an encoded image.
func Dimensions(f media.SourceFile) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil {
		return 0, 0, &DecodeError{Name: f.Name, Err: err}
	}
	return cfg.Width, cfg.Height, nil
}
