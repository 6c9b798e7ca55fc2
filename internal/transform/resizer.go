package transform

import (
	"context"
	"image"
	"math"

	"golang.org/x/image/draw"

	"batchpix/internal/media"
)

// ResizeParams are the target dimensions of a resize run.
type ResizeParams struct {
	Width               int
	Height              int
	MaintainAspectRatio bool
}

// TargetSize computes output dimensions for a source of srcW x srcH. Inputs
// below 1 are clamped to 1. With the aspect lock exactly one of the two
// targets is recomputed from the other.
func (p ResizeParams) TargetSize(srcW, srcH int) (int, int) {
	w, h := max(p.Width, 1), max(p.Height, 1)
	if !p.MaintainAspectRatio || srcW <= 0 || srcH <= 0 {
		return w, h
	}

	ratio := float64(srcW) / float64(srcH)
	if float64(w)/float64(h) > ratio {
		w = max(int(math.Round(float64(h)*ratio)), 1)
	} else {
		h = max(int(math.Round(float64(w)/ratio)), 1)
	}
	return w, h
}

// Resize draws src at the computed dimensions and encodes it in its original
// media type as <stem>_resized<ext>.
func Resize(ctx context.Context, src media.SourceFile, p ResizeParams) (media.SourceFile, error) {
	img, err := decode(src)
	if err != nil {
		return media.SourceFile{}, &ResizeError{Name: src.Name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return media.SourceFile{}, err
	}

	b := img.Bounds()
	w, h := p.TargetSize(b.Dx(), b.Dy())

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, b, draw.Src, nil)

	data, err := encode(src.Name, canvas, src.MediaType, canvasJPEGQuality)
	if err != nil {
		return media.SourceFile{}, &ResizeError{Name: src.Name, Err: err}
	}

	ext := media.Ext(src.Name)
	if ext == "" {
		ext = media.ExtensionForType(src.MediaType)
	}

	return media.SourceFile{
		Name:      media.Stem(src.Name) + "_resized" + ext,
		MediaType: src.MediaType,
		Data:      data,
	}, nil
}
