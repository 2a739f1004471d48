package raster

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Pixel is one picture element with 8-bit, non-premultiplied channels.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common pixel values.
var (
	Black = Pixel{0, 0, 0, 255}
	White = Pixel{255, 255, 255, 255}
)

// Grid is a rectangular, row-major array of pixels with its origin at the
// top-left corner. The pixel at (x, y) is stored at Pix[y*Width+x].
//
// Grids handed out by this module are owned by the receiver. Operations never
// write to the grids they are given; they always allocate a new one.
type Grid struct {
	Width  int
	Height int
	Pix    []Pixel
}

// New allocates a zeroed grid. It panics if either dimension is negative,
// matching image.NewNRGBA.
func New(width, height int) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("raster: negative dimensions %dx%d", width, height))
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, width*height),
	}
}

// FromPixels wraps pix as a width×height grid. The slice is not copied.
func FromPixels(width, height int, pix []Pixel) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, &OpError{Op: "from_pixels", Err: ErrNotRectangular, Detail: fmt.Sprintf("negative dimensions %dx%d", width, height)}
	}
	if len(pix) != width*height {
		return nil, &OpError{Op: "from_pixels", Err: ErrNotRectangular, Detail: fmt.Sprintf("%d pixels for %dx%d", len(pix), width, height)}
	}
	return &Grid{Width: width, Height: height, Pix: pix}, nil
}

// FromRows builds a grid from rows of pixels, rows[y][x]. Every row must have
// the same length.
func FromRows(rows [][]Pixel) (*Grid, error) {
	height := len(rows)
	if height == 0 {
		return New(0, 0), nil
	}
	width := len(rows[0])
	g := New(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, &OpError{Op: "from_rows", Err: ErrNotRectangular, Detail: fmt.Sprintf("row %d has %d pixels, want %d", y, len(row), width)}
		}
		copy(g.Pix[y*width:], row)
	}
	return g, nil
}

// Filled returns a width×height grid with every pixel set to p.
func Filled(width, height int, p Pixel) *Grid {
	g := New(width, height)
	for i := range g.Pix {
		g.Pix[i] = p
	}
	return g
}

// FromImage converts any decoded image into a grid. Premultiplied sources are
// converted to straight alpha.
func FromImage(img image.Image) *Grid {
	return FromNRGBA(imaging.Clone(img))
}

// FromNRGBA copies an NRGBA image into a new grid.
func FromNRGBA(img *image.NRGBA) *Grid {
	b := img.Bounds()
	g := New(b.Dx(), b.Dy())
	for y := 0; y < g.Height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < g.Width; x++ {
			i := x * 4
			g.Pix[y*g.Width+x] = Pixel{row[i], row[i+1], row[i+2], row[i+3]}
		}
	}
	return g
}

// NRGBA copies the grid into a new image with bounds (0,0)-(Width,Height).
func (g *Grid) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for i, p := range g.Pix {
		j := i * 4
		img.Pix[j] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = p.A
	}
	return img
}

// Empty reports whether the grid holds no pixels.
func (g *Grid) Empty() bool {
	return g.Width == 0 || g.Height == 0
}

// Len returns the number of pixels.
func (g *Grid) Len() int {
	return g.Width * g.Height
}

// In reports whether (x, y) lies inside the grid.
func (g *Grid) In(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// PixOffset returns the index of (x, y) in Pix.
func (g *Grid) PixOffset(x, y int) int {
	return y*g.Width + x
}

// At returns the pixel at (x, y), or the zero Pixel when out of bounds.
func (g *Grid) At(x, y int) Pixel {
	if !g.In(x, y) {
		return Pixel{}
	}
	return g.Pix[y*g.Width+x]
}

// Set stores p at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, p Pixel) {
	if !g.In(x, y) {
		return
	}
	g.Pix[y*g.Width+x] = p
}

// Row returns the pixels of row y without copying.
func (g *Grid) Row(y int) []Pixel {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := New(g.Width, g.Height)
	copy(c.Pix, g.Pix)
	return c
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.Width == o.Width && g.Height == o.Height
}

// Equal reports whether g and o have the same size and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if !g.SameSize(o) {
		return false
	}
	for i, p := range g.Pix {
		if o.Pix[i] != p {
			return false
		}
	}
	return true
}

// CheckSameSize returns ErrDimensionMismatch wrapped with op when a and b
// differ in width or height.
func CheckSameSize(op string, a, b *Grid) error {
	if a.SameSize(b) {
		return nil
	}
	return &OpError{
		Op:     op,
		Err:    ErrDimensionMismatch,
		Detail: fmt.Sprintf("%dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height),
	}
}
