package pointwise

import (
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// Equalization is the result of Equalize.
type Equalization struct {
	// Grid is the equalized grayscale image.
	Grid *raster.Grid `json:"-"`

	// Before is the histogram of the grayscale image prior to remapping.
	Before raster.Histogram `json:"before"`

	// After is the histogram of Grid.
	After raster.Histogram `json:"after"`
}

// Histogram counts the pixels of g per grayscale intensity in one pass.
func Histogram(g *raster.Grid) raster.Histogram {
	var h raster.Histogram
	for _, p := range g.Pix {
		h[raster.Intensity(p)]++
	}
	return h
}

// Equalize reduces g to grayscale and remaps each level v through
// round(255 * cdf(v) / total), spreading the used levels over the full range.
// Alpha is preserved.
func Equalize(g *raster.Grid) *Equalization {
	gray := Grayscale(g)
	before := Histogram(gray)

	total := gray.Len()
	if total == 0 {
		return &Equalization{Grid: gray, Before: before, After: before}
	}

	cdf := before.CDF()
	var lut [raster.Levels]uint8
	for v := range lut {
		lut[v] = raster.ClampFloat(255 * float64(cdf[v]) / float64(total))
	}

	out := mapPixels(gray, func(p raster.Pixel) raster.Pixel {
		return raster.Gray(lut[p.R], p.A)
	})

	return &Equalization{
		Grid:   out,
		Before: before,
		After:  Histogram(out),
	}
}
