// Package pipeline orchestrates a full word-cloud run: derive the gradient,
// assign randomized weights per variation, rasterize each variation, and
// produce display thumbnails plus downloadable artifacts. Both the CLI and
// the HTTP dashboard execute runs through the same Runner so artifact
// caching lives in one place.
package pipeline

import (
	"time"

	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/config"
	"github.com/elenamtz/nubegen/pkg/freq"
	"github.com/elenamtz/nubegen/pkg/palette"
	"github.com/elenamtz/nubegen/pkg/render"
)

// Artifact formats.
const (
	FormatPNG  = "png"
	FormatJSON = "json"
)

// Options describe one pipeline run.
type Options struct {
	// Config is the word-cloud configuration to render.
	Config config.Configuration

	// Seed drives weight assignment. Zero means a fresh random seed per
	// run, which also disables artifact-cache lookups since the output is
	// unique.
	Seed uint64

	// Count is the number of variations to generate (default 5).
	Count int

	// Formats selects artifacts per variation: "png" raster (always
	// useful) and optionally a "json" manifest of weights and stops.
	Formats []string

	// PreviewWidth bounds thumbnails in pixels (default 300).
	PreviewWidth int

	// Refresh skips cache lookups but still stores fresh results.
	Refresh bool
}

// ValidateAndSetDefaults checks the options and fills defaults in place.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.Config.ValidateForRender(); err != nil {
		return err
	}
	if o.Count <= 0 {
		o.Count = freq.DefaultVariations
	}
	if o.PreviewWidth <= 0 {
		o.PreviewWidth = render.DefaultPreviewWidth
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	for _, f := range o.Formats {
		if f != FormatPNG && f != FormatJSON {
			return apperr.New(apperr.ErrCodeInternal, "unknown artifact format %q", f)
		}
	}
	return nil
}

func (o *Options) wantsJSON() bool {
	for _, f := range o.Formats {
		if f == FormatJSON {
			return true
		}
	}
	return false
}

// Variation is one rendered weight mapping.
type Variation struct {
	// Index is 1-based, matching the displayed "Variation #n" labels and
	// the download filename.
	Index int

	// Weights is the word→weight mapping this variation was rendered from.
	Weights map[string]int

	// PNG is the full-resolution lossless raster.
	PNG []byte

	// Thumb is the proportionally downscaled preview PNG.
	Thumb []byte

	// JSON is the optional manifest artifact (nil unless requested).
	JSON []byte

	// Filename is the download name, wordcloud_variation_<n>.png.
	Filename string

	// Cached reports whether the raster came from the artifact cache.
	Cached bool
}

// Stats aggregates timing and cache behavior for one run.
type Stats struct {
	RenderTime time.Duration
	CacheHits  int
}

// Result is the output of one pipeline run.
type Result struct {
	// Seed is the effective seed (generated when Options.Seed was zero).
	Seed uint64

	// Stops is the derived gradient.
	Stops []palette.RGB

	// Variations holds Count entries in index order.
	Variations []Variation

	Stats Stats
}
