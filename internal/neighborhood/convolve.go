package neighborhood

import (
	"math"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

// GaussianSize is the side length of the Gaussian blur kernel.
const GaussianSize = 5

// GaussianKernel builds a GaussianSize×GaussianSize isotropic kernel with
// weight(dx,dy) = exp(-(dx²+dy²)/(2σ²)) / (2πσ²), normalized to sum to 1.
func GaussianKernel(sigma float64) (convolution.Matrix, error) {
	if !(sigma > 0) || math.IsInf(sigma, 1) {
		return nil, raster.InvalidParameter("gaussian_blur", "sigma must be positive and finite, got %v", sigma)
	}

	r := GaussianSize / 2
	twoSigma2 := 2 * sigma * sigma
	coeff := 1 / (math.Pi * twoSigma2)

	k := convolution.NewKernel(GaussianSize, GaussianSize)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			k.Matrix[(dy+r)*GaussianSize+dx+r] = coeff * math.Exp(-float64(dx*dx+dy*dy)/twoSigma2)
		}
	}
	return k.Normalized(), nil
}

// GaussianBlur smooths g with a 5×5 Gaussian kernel of the given sigma.
// The two-pixel border band is copied unchanged.
func GaussianBlur(g *raster.Grid, sigma float64) (*raster.Grid, error) {
	k, err := GaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return convolve(g, k), nil
}

// Convolve applies an odd, square kernel to each color channel of g. The
// kernel is used as given, without normalization; results are rounded and
// clamped. The border band as wide as the kernel radius is copied unchanged
// and alpha comes from the center pixel.
func Convolve(g *raster.Grid, k convolution.Matrix) (*raster.Grid, error) {
	if k == nil {
		return nil, raster.InvalidParameter("convolve", "nil kernel")
	}
	w, h := k.MaxX(), k.MaxY()
	if w != h || w%2 == 0 || w <= 0 {
		return nil, raster.InvalidParameter("convolve", "kernel must be odd and square, got %dx%d", w, h)
	}
	return convolve(g, k), nil
}

// KernelFromRows builds a kernel from rows of weights, rows[y][x].
func KernelFromRows(rows [][]float64) (*convolution.Kernel, error) {
	size := len(rows)
	if size == 0 || size%2 == 0 {
		return nil, raster.InvalidParameter("convolve", "kernel must have an odd number of rows, got %d", size)
	}
	k := convolution.NewKernel(size, size)
	for y, row := range rows {
		if len(row) != size {
			return nil, raster.InvalidParameter("convolve", "kernel row %d has %d weights, want %d", y, len(row), size)
		}
		for x, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, raster.InvalidParameter("convolve", "kernel weight (%d,%d) is not finite", x, y)
			}
			k.Matrix[y*size+x] = v
		}
	}
	return k, nil
}

func convolve(src *raster.Grid, k convolution.Matrix) *raster.Grid {
	size := k.MaxX()
	r := size / 2
	weights := make([]float64, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			weights[y*size+x] = k.At(x, y)
		}
	}

	w := src.Width
	return filter(src, r, func(x, y int) raster.Pixel {
		var accR, accG, accB float64
		for ky := 0; ky < size; ky++ {
			row := (y+ky-r)*w + x - r
			for kx := 0; kx < size; kx++ {
				wgt := weights[ky*size+kx]
				p := src.Pix[row+kx]
				accR += float64(p.R) * wgt
				accG += float64(p.G) * wgt
				accB += float64(p.B) * wgt
			}
		}
		return raster.Pixel{
			R: raster.ClampFloat(accR),
			G: raster.ClampFloat(accG),
			B: raster.ClampFloat(accB),
			A: src.Pix[y*w+x].A,
		}
	})
}
