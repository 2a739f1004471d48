package ops

import (
	"github.com/ironsheep/image-editor-mcp/internal/neighborhood"
	"github.com/ironsheep/image-editor-mcp/internal/pointwise"
	"github.com/ironsheep/image-editor-mcp/internal/raster"
)

func init() {
	// Two images.
	binary("add", "Add two images per channel, saturating at 255", pointwise.Add)
	binary("subtract", "Subtract image B from image A per channel, saturating at 0", pointwise.Subtract)
	binary("difference", "Absolute per-channel difference of two images", pointwise.AbsoluteDifference)
	binary("average", "Saturating sum of two images halved, alpha included", pointwise.Average)
	register(Operation{
		Name:        "blend",
		Category:    CategoryArithmetic,
		Inputs:      2,
		Params:      []string{"ratio"},
		Description: "Linear blend ratio*A + (1-ratio)*B; ratio is clamped to [0,1]",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			return pointwise.Blend(in[0], in[1], p.Ratio)
		},
	})

	// Image and scalar.
	scalar("add_value", "Add a value to each color channel", pointwise.AddValue)
	scalar("subtract_value", "Subtract a value from each color channel", pointwise.SubtractValue)
	scalar("multiply", "Multiply each color channel by a value", pointwise.Multiply)
	register(Operation{
		Name:        "divide",
		Category:    CategoryScalar,
		Inputs:      1,
		Params:      []string{"value"},
		Description: "Divide each color channel by a non-zero value",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			return pointwise.Divide(in[0], p.Value)
		},
	})

	// Single-image transforms.
	unary(CategoryTransform, "grayscale", "Set each channel to round((R+G+B)/3)", pointwise.Grayscale)
	unary(CategoryTransform, "negative", "Invert each color channel", pointwise.Negative)
	unary(CategoryTransform, "flip_horizontal", "Mirror left to right", pointwise.FlipLeftToRight)
	unary(CategoryTransform, "flip_vertical", "Mirror top to bottom", pointwise.FlipTopToBottom)
	unary(CategoryTransform, "equalize", "Histogram-equalize the grayscale image", func(g *raster.Grid) *raster.Grid {
		return pointwise.Equalize(g).Grid
	})
	register(Operation{
		Name:        "threshold",
		Category:    CategoryTransform,
		Inputs:      1,
		Params:      []string{"level"},
		Description: "White where intensity >= level, black elsewhere",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			if p.Level < 0 || p.Level > 255 {
				return nil, raster.InvalidParameter("threshold", "level %d outside [0,255]", p.Level)
			}
			return pointwise.Threshold(in[0], uint8(p.Level)), nil
		},
	})

	// Rank and convolution filters.
	unary(CategoryFilter, "mean", "3x3 mean filter", neighborhood.Mean)
	unary(CategoryFilter, "min", "3x3 minimum filter", neighborhood.Min)
	unary(CategoryFilter, "max", "3x3 maximum filter", neighborhood.Max)
	unary(CategoryFilter, "median", "3x3 median filter", neighborhood.Median)
	unary(CategoryFilter, "conservative", "Clamp each pixel into the range of its 8 neighbors", neighborhood.ConservativeSmoothing)
	register(Operation{
		Name:        "order",
		Category:    CategoryFilter,
		Inputs:      1,
		Params:      []string{"order"},
		Description: "3x3 order-statistic filter; order 0-8 selects the rank",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			return neighborhood.Order(in[0], p.Order)
		},
	})
	register(Operation{
		Name:        "gaussian",
		Category:    CategoryFilter,
		Inputs:      1,
		Params:      []string{"sigma"},
		Description: "5x5 Gaussian blur with the given positive sigma",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			return neighborhood.GaussianBlur(in[0], p.Sigma)
		},
	})
	register(Operation{
		Name:        "convolve",
		Category:    CategoryFilter,
		Inputs:      1,
		Params:      []string{"kernel"},
		Description: "Convolve with an odd, square kernel given as rows of weights",
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			k, err := neighborhood.KernelFromRows(p.Kernel)
			if err != nil {
				return nil, err
			}
			return neighborhood.Convolve(in[0], k)
		},
	})

	// Edge detection.
	unary(CategoryEdge, "prewitt", "Prewitt gradient magnitude", neighborhood.Prewitt)
	unary(CategoryEdge, "sobel", "Sobel gradient magnitude", neighborhood.Sobel)
	unary(CategoryEdge, "laplacian", "Laplacian edge magnitude", neighborhood.Laplacian)

	// Morphology.
	morphology("dilate", "Binary dilation with a cross structuring element", neighborhood.Dilate)
	morphology("erode", "Binary erosion with a cross structuring element", neighborhood.Erode)
	morphology("open", "Erosion followed by dilation", neighborhood.Open)
	morphology("close", "Dilation followed by erosion", neighborhood.Close)
	morphology("contour", "Image minus its erosion", neighborhood.Contour)
}

func binary(name, desc string, fn func(a, b *raster.Grid) (*raster.Grid, error)) {
	register(Operation{
		Name:        name,
		Category:    CategoryArithmetic,
		Inputs:      2,
		Description: desc,
		run: func(in []*raster.Grid, _ Params) (*raster.Grid, error) {
			return fn(in[0], in[1])
		},
	})
}

func scalar(name, desc string, fn func(g *raster.Grid, v float64) *raster.Grid) {
	register(Operation{
		Name:        name,
		Category:    CategoryScalar,
		Inputs:      1,
		Params:      []string{"value"},
		Description: desc,
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			return fn(in[0], p.Value), nil
		},
	})
}

func unary(cat Category, name, desc string, fn func(g *raster.Grid) *raster.Grid) {
	register(Operation{
		Name:        name,
		Category:    cat,
		Inputs:      1,
		Description: desc,
		run: func(in []*raster.Grid, _ Params) (*raster.Grid, error) {
			return fn(in[0]), nil
		},
	})
}

// morphology registers a binary-image operator. With Params.RequireBinary the
// input is validated first and ErrNotBinaryImage is returned on failure.
func morphology(name, desc string, fn func(g *raster.Grid) *raster.Grid) {
	register(Operation{
		Name:        name,
		Category:    CategoryMorphology,
		Inputs:      1,
		Params:      []string{"require_binary"},
		Description: desc,
		run: func(in []*raster.Grid, p Params) (*raster.Grid, error) {
			if p.RequireBinary {
				if err := raster.ValidateBinary(in[0]); err != nil {
					return nil, err
				}
			}
			return fn(in[0]), nil
		},
	})
}
