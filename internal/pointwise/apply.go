package pointwise

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// mapPixels returns a new grid with fn applied to every pixel of src.
func mapPixels(src *raster.Grid, fn func(p raster.Pixel) raster.Pixel) *raster.Grid {
	dst := raster.New(src.Width, src.Height)
	w := src.Width
	parallel.Line(src.Height, func(start, end int) {
		for i := start * w; i < end*w; i++ {
			dst.Pix[i] = fn(src.Pix[i])
		}
	})
	return dst
}

// zipPixels combines two equally sized grids pixel by pixel. The size check
// runs before the result is allocated.
func zipPixels(op string, a, b *raster.Grid, fn func(pa, pb raster.Pixel) raster.Pixel) (*raster.Grid, error) {
	if err := raster.CheckSameSize(op, a, b); err != nil {
		return nil, err
	}
	dst := raster.New(a.Width, a.Height)
	w := a.Width
	parallel.Line(a.Height, func(start, end int) {
		for i := start * w; i < end*w; i++ {
			dst.Pix[i] = fn(a.Pix[i], b.Pix[i])
		}
	})
	return dst, nil
}
