package transform

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"batchpix/internal/media"
)

// canvasJPEGQuality mirrors the default quality a 2D canvas uses when asked
// for JPEG output without an explicit quality.
const canvasJPEGQuality = 92

// decode turns src into an upright raster.
func decode(src media.SourceFile) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(src.Data))
	if err != nil {
		return nil, &DecodeError{Name: src.Name, Err: err}
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, &DecodeError{Name: src.Name, Err: fmt.Errorf("image has no pixels")}
	}
	return applyOrientation(img, ReadOrientation(src.Data)), nil
}

func formatForType(mediaType string) (imaging.Format, bool) {
	switch strings.ToLower(mediaType) {
	case media.TypeJPEG, "image/jpg", "image/pjpeg":
		return imaging.JPEG, true
	case media.TypePNG:
		return imaging.PNG, true
	case media.TypeGIF:
		return imaging.GIF, true
	case media.TypeBMP:
		return imaging.BMP, true
	case media.TypeTIFF:
		return imaging.TIFF, true
	default:
		return 0, false
	}
}

// encode serialises img in mediaType. JPEG output is flattened onto white
// first, since the format has no alpha channel.
func encode(name string, img image.Image, mediaType string, jpegQuality int) ([]byte, error) {
	format, ok := formatForType(mediaType)
	if !ok {
		return nil, &EncodeError{Name: name, MediaType: mediaType, Err: ErrUnsupportedFormat}
	}

	var opts []imaging.EncodeOption
	if format == imaging.JPEG {
		img = flatten(img)
		opts = append(opts, imaging.JPEGQuality(jpegQuality))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return nil, &EncodeError{Name: name, MediaType: mediaType, Err: err}
	}
	return buf.Bytes(), nil
}

func flatten(img image.Image) image.Image {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// jpegQuality converts a 0-1 encoder quality into the 1-100 scale.
func jpegQuality(q float64) int {
	n := int(math.Round(q * 100))
	if n < 1 {
		return 1
	}
	if n > 100 {
		return 100
	}
	return n
}
