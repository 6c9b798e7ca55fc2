package transform

import (
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// Orientation is the EXIF orientation tag value (1-8).
type Orientation int

const (
	OrientNormal Orientation = 1
)

const orientationTagID = 0x0112

// ReadOrientation returns the primary-image orientation recorded in the EXIF
// block of data. Files without EXIF, or with a malformed block, are treated as
// normally oriented.
func ReadOrientation(data []byte) Orientation {
	raw, err := exif.SearchAndExtractExif(data)
	if err != nil {
		// exif.ErrNoExif lands here too.
		return OrientNormal
	}

	tags, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return OrientNormal
	}

	for _, tag := range tags {
		if tag.TagId != orientationTagID && tag.TagName != "Orientation" {
			continue
		}
		// IFD1 describes the thumbnail.
		if tag.IfdPath != "" && tag.IfdPath != "IFD" {
			continue
		}
		if o := orientationValue(tag.Value, tag.FormattedFirst); o >= 1 && o <= 8 {
			return o
		}
	}

	return OrientNormal
}

func orientationValue(value any, formatted string) Orientation {
	switch v := value.(type) {
	case []uint16:
		if len(v) > 0 {
			return Orientation(v[0])
		}
	case uint16:
		return Orientation(v)
	}
	n, err := strconv.Atoi(strings.TrimSpace(formatted))
	if err != nil {
		return 0
	}
	return Orientation(n)
}

// applyOrientation returns img as it should be displayed.
func applyOrientation(img image.Image, o Orientation) image.Image {
	switch o {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
