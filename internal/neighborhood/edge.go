package neighborhood

import (
	"math"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// kernel3 is a 3×3 weight matrix indexed [row][column].
type kernel3 [3][3]float64

var (
	prewittV = kernel3{
		{-1, -1, -1},
		{0, 0, 0},
		{1, 1, 1},
	}
	prewittH = kernel3{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}

	sobelV = kernel3{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
	sobelH = kernel3{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	laplacian = kernel3{
		{0, 1, 0},
		{1, -4, 1},
		{0, 1, 0},
	}
	laplacianNeg = kernel3{
		{0, -1, 0},
		{-1, 4, -1},
		{0, -1, 0},
	}
)

// Prewitt detects edges with the unweighted ±1 gradient kernels.
func Prewitt(g *raster.Grid) *raster.Grid {
	return gradient(g, prewittV, prewittH)
}

// Sobel detects edges with the gradient kernels whose center row and column
// are weighted by 2.
func Sobel(g *raster.Grid) *raster.Grid {
	return gradient(g, sobelV, sobelH)
}

// Laplacian emphasizes second-derivative edges by pairing the 4-neighbor
// Laplacian kernel with its negation.
func Laplacian(g *raster.Grid) *raster.Grid {
	return gradient(g, laplacian, laplacianNeg)
}

// gradient computes sqrt(a² + b²) per color channel, where a and b are the
// responses to ka and kb. Magnitudes are rounded and clamped to 255.
func gradient(src *raster.Grid, ka, kb kernel3) *raster.Grid {
	return filter(src, 1, func(x, y int) raster.Pixel {
		var win window
		win.load(src, x, y)
		return win.reduce(func(s *samples) uint8 {
			var a, b float64
			for i, v := range s {
				a += float64(v) * ka[i/3][i%3]
				b += float64(v) * kb[i/3][i%3]
			}
			return raster.ClampFloat(math.Sqrt(a*a + b*b))
		})
	})
}
