package transform

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"math"
	"testing"

	"batchpix/internal/media"
	"batchpix/pkg/imgutil"
)

func newTestCompressor() *Compressor {
	return NewCompressor(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCompressNormalisesToJPEG(t *testing.T) {
	src := pngFile(t, "holiday.photo.png", makeNoise(64, 48))

	out, err := newTestCompressor().Compress(context.Background(), src, 32)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if out.Name != "holiday.photo_compressed.jpg" {
		t.Fatalf("unexpected name %q", out.Name)
	}
	if out.MediaType != media.TypeJPEG {
		t.Fatalf("unexpected media type %q", out.MediaType)
	}
	if kind := imgutil.Sniff(out.Data); kind != imgutil.KindJPEG {
		t.Fatalf("output is %s, want jpeg", kind)
	}
	if out.Size() >= src.Size() {
		t.Fatalf("noise PNG should shrink as JPEG: %d >= %d", out.Size(), src.Size())
	}
}

func TestCompressCapsLongEdge(t *testing.T) {
	c := newTestCompressor()
	c.MaxEdge = 100
	c.FallbackMaxEdge = 50

	out, err := c.Compress(context.Background(), pngFile(t, "wide.png", makeNoise(400, 100)), 80)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if w, h := decodedSize(t, out); w != 100 || h != 25 {
		t.Fatalf("got %dx%d, want 100x25", w, h)
	}
}

func TestCompressNeverUpscales(t *testing.T) {
	out, err := newTestCompressor().Compress(context.Background(), pngFile(t, "small.png", makeNoise(40, 30)), 50)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if w, h := decodedSize(t, out); w != 40 || h != 30 {
		t.Fatalf("got %dx%d, want 40x30", w, h)
	}
}

func TestCompressFallbackNeverExceedsFirstPass(t *testing.T) {
	c := newTestCompressor()
	src := jpegFile(t, "tiny.jpg", makeGradient(96, 64), 5)

	img, err := decode(src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	first, err := c.pass(context.Background(), src.Name, img, c.MaxEdge, 1.0)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if int64(len(first)) < src.Size() {
		t.Fatalf("fixture should not shrink at quality 100: %d < %d", len(first), src.Size())
	}

	out, err := c.Compress(context.Background(), src, 100)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}
	if out.Size() > int64(len(first)) {
		t.Fatalf("output %d larger than first pass %d", out.Size(), len(first))
	}
}

func TestCompressFlattensTransparencyOntoWhite(t *testing.T) {
	transparent := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	out, err := newTestCompressor().Compress(context.Background(), pngFile(t, "clear.png", transparent), 90)
	if err != nil {
		t.Fatalf("compress: %v", err)
	}

	img, err := decode(out)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	r, g, b, _ := img.At(8, 8).RGBA()
	if r>>8 < 240 || g>>8 < 240 || b>>8 < 240 {
		t.Fatalf("expected white background, got %v", color.RGBA64{uint16(r), uint16(g), uint16(b), 0xffff})
	}
}

func TestCompressDecodeFailure(t *testing.T) {
	src := media.SourceFile{Name: "broken.png", MediaType: media.TypePNG, Data: []byte("not an image at all")}

	_, err := newTestCompressor().Compress(context.Background(), src, 50)
	var cerr *CompressionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected CompressionError, got %v", err)
	}
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Name != "broken.png" {
		t.Fatalf("expected wrapped DecodeError, got %v", err)
	}
}

func TestCompressHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestCompressor().Compress(ctx, pngFile(t, "a.png", makeGradient(8, 8)), 50)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFallbackQuality(t *testing.T) {
	cases := map[int]float64{
		100: 0.80,
		32:  0.12,
		30:  0.10,
		25:  0.10,
		1:   0.10,
	}
	for q, want := range cases {
		if got := FallbackQuality(q); math.Abs(got-want) > 1e-9 {
			t.Errorf("FallbackQuality(%d) = %v, want %v", q, got, want)
		}
	}
}

func TestQualityHint(t *testing.T) {
	if QualityHint(10) != "strong compression" || QualityHint(50) != "medium compression" || QualityHint(70) != "light compression" {
		t.Fatal("unexpected quality hints")
	}
}

func TestPassRefinesOnlyAboveByteCeiling(t *testing.T) {
	c := newTestCompressor()
	img := makeNoise(64, 64)

	single, err := encode("n.png", img, media.TypeJPEG, jpegQuality(0.8))
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.pass(context.Background(), "n.png", img, c.MaxEdge, 0.8)
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if len(got) != len(single) {
		t.Fatalf("pass under the ceiling should not refine: %d != %d", len(got), len(single))
	}

	c.MaxBytes = 1
	refined, err := c.pass(context.Background(), "n.png", img, c.MaxEdge, 0.8)
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if len(refined) >= len(single) {
		t.Fatalf("pass over the ceiling should lower quality: %d >= %d", len(refined), len(single))
	}
}

func TestOversized(t *testing.T) {
	c := &Compressor{MaxBytes: 100}
	if c.oversized(100) || !c.oversized(101) {
		t.Fatal("ceiling should be exclusive")
	}
	c.MaxBytes = 0
	if c.oversized(1 << 30) {
		t.Fatal("zero ceiling disables refinement")
	}
}
