package pointwise

import (
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// DefaultThresholdLevel splits the intensity range in half.
const DefaultThresholdLevel = 128

// Grayscale sets every color channel to the pixel's intensity,
// round((R+G+B)/3). Alpha is preserved.
func Grayscale(g *raster.Grid) *raster.Grid {
	return mapPixels(g, func(p raster.Pixel) raster.Pixel {
		return raster.Gray(raster.Intensity(p), p.A)
	})
}

// Negative inverts each color channel (255-c). Alpha is preserved.
func Negative(g *raster.Grid) *raster.Grid {
	return mapPixels(g, func(p raster.Pixel) raster.Pixel {
		return raster.Pixel{R: 255 - p.R, G: 255 - p.G, B: 255 - p.B, A: p.A}
	})
}

// Threshold binarizes g: a pixel whose intensity is at least level becomes
// white, any other pixel becomes black. Alpha is preserved, so the output
// satisfies raster.ValidateBinary.
func Threshold(g *raster.Grid, level uint8) *raster.Grid {
	return mapPixels(g, func(p raster.Pixel) raster.Pixel {
		if raster.Intensity(p) >= level {
			return raster.Gray(255, p.A)
		}
		return raster.Gray(0, p.A)
	})
}

// FlipLeftToRight mirrors g around its vertical axis:
// result[y][x] = g[y][w-1-x].
func FlipLeftToRight(g *raster.Grid) *raster.Grid {
	if g.Empty() {
		return raster.New(g.Width, g.Height)
	}
	return raster.FromNRGBA(imaging.FlipH(g.NRGBA()))
}

// FlipTopToBottom mirrors g around its horizontal axis:
// result[y][x] = g[h-1-y][x].
func FlipTopToBottom(g *raster.Grid) *raster.Grid {
	if g.Empty() {
		return raster.New(g.Width, g.Height)
	}
	return raster.FromNRGBA(imaging.FlipV(g.NRGBA()))
}
