package pointwise

import (
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// scale applies fn to the color channels of every pixel, rounding and
// saturating the result. Alpha is copied from the source.
func scale(src *raster.Grid, fn func(c float64) float64) *raster.Grid {
	return mapPixels(src, func(p raster.Pixel) raster.Pixel {
		return raster.Pixel{
			R: raster.ClampFloat(fn(float64(p.R))),
			G: raster.ClampFloat(fn(float64(p.G))),
			B: raster.ClampFloat(fn(float64(p.B))),
			A: p.A,
		}
	})
}

// AddValue adds v to each color channel.
func AddValue(g *raster.Grid, v float64) *raster.Grid {
	return scale(g, func(c float64) float64 { return c + v })
}

// SubtractValue subtracts v from each color channel.
func SubtractValue(g *raster.Grid, v float64) *raster.Grid {
	return scale(g, func(c float64) float64 { return c - v })
}

// Multiply multiplies each color channel by v.
func Multiply(g *raster.Grid, v float64) *raster.Grid {
	return scale(g, func(c float64) float64 { return c * v })
}

// Divide divides each color channel by v. A zero divisor fails with
// ErrDivisionByZero before anything is allocated.
func Divide(g *raster.Grid, v float64) (*raster.Grid, error) {
	if v == 0 {
		return nil, &raster.OpError{Op: "divide", Err: raster.ErrDivisionByZero}
	}
	return scale(g, func(c float64) float64 { return c / v }), nil
}
