package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// DefaultPreviewWidth bounds on-screen thumbnails, in pixels.
const DefaultPreviewWidth = 300

// EncodePNG encodes img losslessly for display and download.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodePNG is the inverse, used when artifacts come back from the cache.
func DecodePNG(data []byte) (image.Image, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return img, nil
}

// Thumbnail proportionally downscales img to at most maxWidth pixels wide,
// preserving aspect ratio. Images already narrower are returned unchanged;
// previews never upscale.
func Thumbnail(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 {
		maxWidth = DefaultPreviewWidth
	}
	if img.Bounds().Dx() <= maxWidth {
		return img
	}
	return imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
}

// Filename returns the download name for variation n (1-based):
// wordcloud_variation_<n>.png
func Filename(n int) string {
	return fmt.Sprintf("wordcloud_variation_%d.png", n)
}
