// Package config defines the word-cloud configuration, its flat-file
// snapshot store, and JSON import/export.
//
// A Configuration is the unit of persisted state: the gradient anchor color,
// the stop count, the word list, and the target raster dimensions. Named
// snapshots of configurations are persisted as a JSON array in a single
// local file; the store is a single-user convenience, not a multi-tenant
// database.
package config

import (
	"github.com/elenamtz/nubegen/pkg/apperr"
	"github.com/elenamtz/nubegen/pkg/palette"
)

// Dimension bounds for the rendered raster, in pixels.
const (
	MinDimension = 200
	MaxDimension = 6000
)

// Configuration holds everything needed to render a word-cloud variation.
// The JSON field names are the wire format of exported config files and the
// snapshot store.
type Configuration struct {
	FinalColor string   `json:"final_color"` // gradient anchor, "#rrggbb"
	StopCount  int      `json:"n_stops"`    // number of gradient colors, [3,10]
	Words      []string `json:"words"`      // tokens to render; duplicates permitted
	Width      int      `json:"width"`      // raster width, [200,6000]
	Height     int      `json:"height"`     // raster height, [200,6000]
}

// Default returns the configuration a fresh session starts with.
func Default() Configuration {
	return Configuration{
		FinalColor: "#ff00d3",
		StopCount:  5,
		Words: []string{
			"algún", "ningún", "otro", "todo", "cualquier",
			"cualquiera", "poco", "mucho", "varios", "demasiado",
			"bastante", "cada", "cierto", "ninguno", "alguno",
			"mismo", "semejante", "tantos", "diverso", "suficiente",
		},
		Width:  2000,
		Height: 1600,
	}
}

// Validate checks that every field is within range. An empty word list is
// valid here: such a configuration can be stored and edited, just not
// rendered (see ValidateForRender).
func (c Configuration) Validate() error {
	if _, err := palette.ParseHex(c.FinalColor); err != nil {
		return err
	}
	if c.StopCount < palette.MinStops || c.StopCount > palette.MaxStops {
		return apperr.New(apperr.ErrCodeInvalidStops,
			"stop count %d outside [%d,%d]", c.StopCount, palette.MinStops, palette.MaxStops)
	}
	if c.Width < MinDimension || c.Width > MaxDimension {
		return apperr.New(apperr.ErrCodeInvalidDimensions,
			"width %d outside [%d,%d]", c.Width, MinDimension, MaxDimension)
	}
	if c.Height < MinDimension || c.Height > MaxDimension {
		return apperr.New(apperr.ErrCodeInvalidDimensions,
			"height %d outside [%d,%d]", c.Height, MinDimension, MaxDimension)
	}
	return nil
}

// ValidateForRender is Validate plus the non-empty-words invariant. Callers
// must short-circuit rendering when this fails; there is no partial output.
func (c Configuration) ValidateForRender() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Words) == 0 {
		return apperr.New(apperr.ErrCodeEmptyWords, "no words provided; add at least one word")
	}
	return nil
}

// Anchor returns the parsed gradient anchor color.
func (c Configuration) Anchor() (palette.RGB, error) {
	return palette.ParseHex(c.FinalColor)
}

// Stops derives the gradient for this configuration.
func (c Configuration) Stops() ([]palette.RGB, error) {
	anchor, err := c.Anchor()
	if err != nil {
		return nil, err
	}
	return palette.Stops(anchor, c.StopCount)
}

// Clone returns a deep copy, so callers can mutate the word list without
// aliasing stored snapshots.
func (c Configuration) Clone() Configuration {
	out := c
	out.Words = make([]string, len(c.Words))
	copy(out.Words, c.Words)
	return out
}
