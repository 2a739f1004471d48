package neighborhood

import (
	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// filter runs fn over every pixel whose radius-neighborhood lies inside src.
// The border band of width radius is copied from src unchanged. fn reads src
// only, so rows can be computed in any order.
func filter(src *raster.Grid, radius int, fn func(x, y int) raster.Pixel) *raster.Grid {
	dst := src.Clone()
	w, h := src.Width, src.Height
	if w <= 2*radius || h <= 2*radius {
		return dst
	}

	parallel.Line(h-2*radius, func(start, end int) {
		for y := start + radius; y < end+radius; y++ {
			row := y * w
			for x := radius; x < w-radius; x++ {
				dst.Pix[row+x] = fn(x, y)
			}
		}
	})
	return dst
}

// window holds a 3×3 neighborhood in row-major order; index 4 is the center.
type window [9]raster.Pixel

const center = 4

func (win *window) load(src *raster.Grid, x, y int) {
	w := src.Width
	i := 0
	for dy := -1; dy <= 1; dy++ {
		row := (y + dy) * w
		for dx := -1; dx <= 1; dx++ {
			win[i] = src.Pix[row+x+dx]
			i++
		}
	}
}

// samples is one color channel of a window.
type samples [9]uint8

// reduce applies fn to each color channel of the window. Alpha comes from the
// center pixel.
func (win *window) reduce(fn func(s *samples) uint8) raster.Pixel {
	var r, g, b samples
	for i, p := range win {
		r[i], g[i], b[i] = p.R, p.G, p.B
	}
	return raster.Pixel{R: fn(&r), G: fn(&g), B: fn(&b), A: win[center].A}
}

// window3 builds a radius-1 filter from a per-channel reduction.
func window3(src *raster.Grid, fn func(s *samples) uint8) *raster.Grid {
	return filter(src, 1, func(x, y int) raster.Pixel {
		var win window
		win.load(src, x, y)
		return win.reduce(fn)
	})
}
