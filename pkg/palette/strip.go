package palette

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
)

// StripPNG renders the gradient stops as a horizontal strip of equal-width
// swatches and returns it PNG-encoded. Used by the dashboard's gradient
// preview.
func StripPNG(stops []RGB, width, height int) ([]byte, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("no gradient stops to draw")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid strip size %dx%d", width, height)
	}

	dc := gg.NewContext(width, height)
	sw := float64(width) / float64(len(stops))
	for i, s := range stops {
		dc.SetColor(s.NRGBA())
		dc.DrawRectangle(float64(i)*sw, 0, sw+1, float64(height))
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode gradient strip: %w", err)
	}
	return buf.Bytes(), nil
}
