package neighborhood

import (
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// Morphological operators work on binary images (every color channel 0 or
// 255) with a cross-shaped structuring element: the pixel and its four
// edge-adjacent neighbors. They do not verify the input; callers that need
// the guarantee run raster.ValidateBinary first.

// Dilate turns a pixel white when any sample under the cross is set.
func Dilate(g *raster.Grid) *raster.Grid {
	return cross(g, false)
}

// Erode keeps a pixel white only when every sample under the cross is set.
func Erode(g *raster.Grid) *raster.Grid {
	return cross(g, true)
}

// Open erodes then dilates, removing foreground specks smaller than the
// structuring element.
func Open(g *raster.Grid) *raster.Grid {
	return Dilate(Erode(g))
}

// Close dilates then erodes, filling background gaps smaller than the
// structuring element.
func Close(g *raster.Grid) *raster.Grid {
	return Erode(Dilate(g))
}

// Contour subtracts the eroded image from g per color channel, saturating at
// 0, which leaves the boundary band of each foreground region. Alpha is kept
// from g.
func Contour(g *raster.Grid) *raster.Grid {
	eroded := Erode(g)
	out := raster.New(g.Width, g.Height)
	for i, p := range g.Pix {
		e := eroded.Pix[i]
		out.Pix[i] = raster.Pixel{
			R: subSat(p.R, e.R),
			G: subSat(p.G, e.G),
			B: subSat(p.B, e.B),
			A: p.A,
		}
	}
	return out
}

// cross reduces the cross neighborhood with ALL (every sample set) when all
// is true, otherwise ANY. Alpha comes from the center pixel.
func cross(src *raster.Grid, all bool) *raster.Grid {
	w := src.Width
	return filter(src, 1, func(x, y int) raster.Pixel {
		i := y*w + x
		set := all
		for _, j := range [5]int{i, i - w, i + w, i - 1, i + 1} {
			if raster.IsSet(src.Pix[j]) != all {
				set = !all
				break
			}
		}
		if set {
			return raster.Gray(255, src.Pix[i].A)
		}
		return raster.Gray(0, src.Pix[i].A)
	})
}

func subSat(a, b uint8) uint8 {
	if a < b {
		return 0
	}
	return a - b
}
