// Package render wraps the external word-cloud rasterization library behind
// a narrow interface.
//
// Text layout, font shaping, and collision avoidance are entirely owned by
// github.com/psykhi/wordclouds; this package only supplies it a word→weight
// mapping, target dimensions, and the gradient palette, then handles the
// resulting image (PNG encoding, thumbnailing). Keeping the boundary narrow
// lets the color and frequency algorithms stay testable without ever
// rasterizing a glyph.
package render

import (
	"context"
	"image"
	"image/color"

	"github.com/psykhi/wordclouds"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

// Options control a single rasterization.
type Options struct {
	Width      int           // raster width in pixels
	Height     int           // raster height in pixels
	Background color.Color   // nil means white
	Palette    []color.Color // gradient stops; the library picks one per placed word
}

// Renderer turns a weight mapping into a raster image.
type Renderer interface {
	Render(ctx context.Context, weights map[string]int, opts Options) (image.Image, error)
}

// CloudRenderer is the psykhi/wordclouds-backed Renderer.
type CloudRenderer struct {
	// FontPath is the TTF the library lays words out with. See ResolveFont.
	FontPath string
}

// NewCloudRenderer creates a renderer using the given TTF font.
func NewCloudRenderer(fontPath string) *CloudRenderer {
	return &CloudRenderer{FontPath: fontPath}
}

// Render rasterizes the weight mapping. An empty mapping is rejected before
// the library is invoked; callers are expected to have short-circuited on
// the empty-words invariant already, so hitting this is a programming error
// surfaced loudly rather than a blank image.
func (r *CloudRenderer) Render(ctx context.Context, weights map[string]int, opts Options) (image.Image, error) {
	if len(weights) == 0 {
		return nil, apperr.New(apperr.ErrCodeEmptyWords, "nothing to render: empty weight mapping")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	palette := opts.Palette
	if len(palette) == 0 {
		// Safe fallback when no gradient was generated
		palette = []color.Color{color.Black}
	}

	// Cap the biggest glyph relative to the canvas so one word can't
	// swallow the whole image at high weight counts.
	maxFont := opts.Height / 4
	if maxFont < 16 {
		maxFont = 16
	}

	wc := wordclouds.NewWordcloud(weights,
		wordclouds.FontFile(r.FontPath),
		wordclouds.Width(opts.Width),
		wordclouds.Height(opts.Height),
		wordclouds.BackgroundColor(bg),
		wordclouds.Colors(palette),
		wordclouds.FontMaxSize(maxFont),
		wordclouds.FontMinSize(10),
		wordclouds.RandomPlacement(false),
	)
	img := wc.Draw()
	if img == nil {
		return nil, apperr.New(apperr.ErrCodeRenderFailed, "word-cloud library returned no image")
	}
	return img, nil
}

// Ensure CloudRenderer implements Renderer.
var _ Renderer = (*CloudRenderer)(nil)
