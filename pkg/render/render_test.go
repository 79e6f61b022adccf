package render

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

func TestCloudRendererRejectsEmptyWeights(t *testing.T) {
	r := NewCloudRenderer("unused.ttf")
	_, err := r.Render(context.Background(), nil, Options{Width: 400, Height: 300})
	if !apperr.Is(err, apperr.ErrCodeEmptyWords) {
		t.Errorf("empty weights: err = %v, want EMPTY_WORDS", err)
	}
}

func TestCloudRendererHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewCloudRenderer("unused.ttf")
	if _, err := r.Render(ctx, map[string]int{"uno": 10}, Options{Width: 400, Height: 300}); err == nil {
		t.Error("cancelled context should abort rendering")
	}
}

func TestEncodeDecodePNG(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodePNG(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: %v -> %v", img.Bounds(), back.Bounds())
	}

	if _, err := DecodePNG([]byte("not a png")); err == nil {
		t.Error("DecodePNG should reject garbage")
	}
}

func TestThumbnailDownscalesPreservingAspect(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2000, 1600))
	thumb := Thumbnail(img, 300)
	if thumb.Bounds().Dx() != 300 {
		t.Errorf("thumb width = %d, want 300", thumb.Bounds().Dx())
	}
	if thumb.Bounds().Dy() != 240 {
		t.Errorf("thumb height = %d, want 240 (aspect preserved)", thumb.Bounds().Dy())
	}
}

func TestThumbnailNeverUpscales(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 160))
	thumb := Thumbnail(img, 300)
	if thumb.Bounds().Dx() != 200 {
		t.Errorf("small images should pass through, got width %d", thumb.Bounds().Dx())
	}
}

func TestThumbnailDefaultWidth(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2000, 1000))
	thumb := Thumbnail(img, 0)
	if thumb.Bounds().Dx() != DefaultPreviewWidth {
		t.Errorf("zero maxWidth should use default, got %d", thumb.Bounds().Dx())
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(1); got != "wordcloud_variation_1.png" {
		t.Errorf("Filename(1) = %q", got)
	}
	if got := Filename(5); got != "wordcloud_variation_5.png" {
		t.Errorf("Filename(5) = %q", got)
	}
}

func TestResolveFontFallsBackToEmbedded(t *testing.T) {
	// Whatever the host has installed, ResolveFont must return a readable
	// TTF path.
	dir := filepath.Join(t.TempDir(), "fonts")
	path, err := ResolveFont(dir)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("resolved font not readable: %v", err)
	}
	if info.Size() == 0 {
		t.Error("resolved font is empty")
	}
}
