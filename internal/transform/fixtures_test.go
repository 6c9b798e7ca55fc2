package transform

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"testing"

	"batchpix/internal/media"
)

func makeGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) % 256),
				A: 0xff,
			})
		}
	}
	return img
}

func makeNoise(w, h int) *image.NRGBA {
	rng := rand.New(rand.NewSource(7))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func pngFile(t *testing.T, name string, img image.Image) media.SourceFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return media.SourceFile{Name: name, MediaType: media.TypePNG, Data: buf.Bytes()}
}

func jpegFile(t *testing.T, name string, img image.Image, quality int) media.SourceFile {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return media.SourceFile{Name: name, MediaType: media.TypeJPEG, Data: buf.Bytes()}
}

// withOrientation splices an APP1 EXIF segment carrying only an Orientation
// tag right after the SOI marker of a JPEG.
func withOrientation(t *testing.T, f media.SourceFile, o uint16) media.SourceFile {
	t.Helper()

	var tiff bytes.Buffer
	tiff.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(orientationTagID))
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiff, binary.LittleEndian, o)
	_ = binary.Write(&tiff, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiff, binary.LittleEndian, uint32(0))

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(f.Data[:2])
	out.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(f.Data[2:])

	return media.SourceFile{Name: f.Name, MediaType: f.MediaType, Data: out.Bytes()}
}

func decodedSize(t *testing.T, f media.SourceFile) (int, int) {
	t.Helper()
	w, h, err := Dimensions(f)
	if err != nil {
		t.Fatalf("dimensions of %s: %v", f.Name, err)
	}
	return w, h
}
