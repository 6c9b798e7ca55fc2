package transform

import (
	"context"
	"image"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"

	"batchpix/internal/media"
)

const (
	defaultMaxEdge         = 1920
	defaultFallbackMaxEdge = 1280
	defaultMaxBytes        = 10 << 20
	defaultMaxIterations   = 2

	fallbackQualityDrop  = 20
	fallbackQualityFloor = 0.10
	refineFactor         = 0.95
)

// Compressor re-encodes images as JPEG. A first pass uses the requested
// quality; if it does not shrink the file a harsher pass runs and the smaller
// of the two wins. This is best effort, not a minimal-size guarantee.
type Compressor struct {
	// MaxEdge caps the long edge of the first pass. Images are never upscaled.
	MaxEdge int
	// FallbackMaxEdge caps the long edge of the second pass.
	FallbackMaxEdge int
	// MaxBytes is the size ceiling the refinement loop aims under.
	MaxBytes int
	// MaxIterations bounds the quality refinements inside one pass.
	MaxIterations int

	logger *slog.Logger
}

func NewCompressor(logger *slog.Logger) *Compressor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Compressor{
		MaxEdge:         defaultMaxEdge,
		FallbackMaxEdge: defaultFallbackMaxEdge,
		MaxBytes:        defaultMaxBytes,
		MaxIterations:   defaultMaxIterations,
		logger:          logger,
	}
}

// Compress returns src re-encoded as <stem>_compressed.jpg. quality is
// clamped to 1..100; lower means smaller output.
func (c *Compressor) Compress(ctx context.Context, src media.SourceFile, quality int) (media.SourceFile, error) {
	quality = clampQuality(quality)

	img, err := decode(src)
	if err != nil {
		return media.SourceFile{}, &CompressionError{Name: src.Name, Err: err}
	}

	best, err := c.pass(ctx, src.Name, img, c.MaxEdge, float64(quality)/100)
	if err != nil {
		return media.SourceFile{}, &CompressionError{Name: src.Name, Err: err}
	}

	if int64(len(best)) >= src.Size() {
		fallback := FallbackQuality(quality)
		second, err := c.pass(ctx, src.Name, img, c.FallbackMaxEdge, fallback)
		if err != nil {
			return media.SourceFile{}, &CompressionError{Name: src.Name, Err: err}
		}
		c.logger.Debug("compress fallback pass",
			"file", src.Name,
			"source_bytes", src.Size(),
			"first_bytes", len(best),
			"second_bytes", len(second),
			"second_quality", fallback,
		)
		if len(second) < len(best) {
			best = second
		}
	}

	return media.SourceFile{
		Name:      media.Stem(src.Name) + "_compressed.jpg",
		MediaType: media.TypeJPEG,
		Data:      best,
	}, nil
}

// pass encodes img bounded to maxEdge, then lowers the quality at most
// MaxIterations times while the output exceeds MaxBytes. Growth over the
// source size is left to the fallback pass.
// The smallest encoding seen is returned.
func (c *Compressor) pass(ctx context.Context, name string, img image.Image, maxEdge int, quality float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scaled := fitLongEdge(img, maxEdge)
	best, err := encode(name, scaled, media.TypeJPEG, jpegQuality(quality))
	if err != nil {
		return nil, err
	}

	for i := 0; i < c.MaxIterations && c.oversized(len(best)); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		quality *= refineFactor
		data, err := encode(name, scaled, media.TypeJPEG, jpegQuality(quality))
		if err != nil {
			return nil, err
		}
		if len(data) < len(best) {
			best = data
		}
	}

	return best, nil
}

func (c *Compressor) oversized(n int) bool {
	return c.MaxBytes > 0 && n > c.MaxBytes
}

// FallbackQuality is the 0-1 encoder quality used by the second pass.
func FallbackQuality(quality int) float64 {
	return math.Max(float64(quality-fallbackQualityDrop)/100, fallbackQualityFloor)
}

// QualityHint describes how aggressive a quality setting is.
func QualityHint(quality int) string {
	switch {
	case quality < 30:
		return "strong compression"
	case quality < 70:
		return "medium compression"
	default:
		return "light compression"
	}
}

func fitLongEdge(img image.Image, maxEdge int) image.Image {
	b := img.Bounds()
	if maxEdge <= 0 || (b.Dx() <= maxEdge && b.Dy() <= maxEdge) {
		return img
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}
