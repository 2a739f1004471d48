package imaging

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents an RGBA color with 8-bit components including alpha.
// Alpha 0 is fully transparent, 255 fully opaque.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor represents a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a pixel value in several representations, plus the
// intensity the engine uses for grayscale, threshold and histograms.
type ColorResult struct {
	Hex       string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGB       RGBColor  `json:"rgb"`
	RGBA      RGBAColor `json:"rgba"`
	HSL       HSLColor  `json:"hsl"`
	Intensity uint8     `json:"intensity"`
}

// SampleColor reports the pixel at (x, y). Coordinates are 0-based with the
// origin at the top-left corner.
func SampleColor(g *raster.Grid, x, y int) (*ColorResult, error) {
	if !g.In(x, y) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, g.Width, g.Height)
	}
	c := colorResult(g.At(x, y))
	return &c, nil
}

// LabeledPoint is a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult combines a color sample with its location and label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point. If any point is out of bounds no
// partial result is returned.
func SampleColorsMulti(g *raster.Grid, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))
	for _, p := range points {
		c, err := SampleColor(g, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{Label: p.Label, X: p.X, Y: p.Y, Color: *c})
	}
	return &MultiColorResult{Samples: results}, nil
}

func colorResult(p raster.Pixel) ColorResult {
	c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	h, s, l := c.Hsl()
	return ColorResult{
		Hex:  strings.ToUpper(c.Hex()),
		RGB:  RGBColor{R: p.R, G: p.G, B: p.B},
		RGBA: RGBAColor{R: p.R, G: p.G, B: p.B, A: p.A},
		HSL: HSLColor{
			H: int(math.Round(h)) % 360,
			S: int(math.Round(s * 100)),
			L: int(math.Round(l * 100)),
		},
		Intensity: raster.Intensity(p),
	}
}

// HistogramSummary describes an intensity histogram for display.
type HistogramSummary struct {
	Pixels    int     `json:"pixels"`
	Min       int     `json:"min"`
	Max       int     `json:"max"`
	Mean      float64 `json:"mean"`
	PeakLevel int     `json:"peak_level"`
	PeakCount int     `json:"peak_count"`
	Counts    []int   `json:"counts,omitempty"`
}

// SummarizeHistogram reduces h to its summary. When withCounts is set all 256
// bins are included.
func SummarizeHistogram(h raster.Histogram, withCounts bool) HistogramSummary {
	lo, hi, _ := h.Bounds()
	level, count := h.Peak()
	s := HistogramSummary{
		Pixels:    h.Total(),
		Min:       lo,
		Max:       hi,
		Mean:      math.Round(h.Mean()*100) / 100,
		PeakLevel: level,
		PeakCount: count,
	}
	if withCounts {
		s.Counts = h[:]
	}
	return s
}
