package ai

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	_ "image/gif" // Register GIF decoder

	"github.com/disintegration/imaging"
)

const (
	// Image optimization settings for the inline oracle payload
	maxImageWidth = 1024 // px - enough detail for cultural recognition
	jpegQuality   = 80
)

// ImageProcessor shrinks fetched images before they are sent inline to
// the model, keeping requests well under payload limits.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// OptimizeForAI decodes the image, downscales anything wider than
// maxImageWidth (aspect ratio preserved) and re-encodes as JPEG. The
// returned format is always "jpeg".
func (p *ImageProcessor) OptimizeForAI(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	var optimized image.Image = img
	if img.Bounds().Dx() > maxImageWidth {
		optimized = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, optimized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), "jpeg", nil
}
