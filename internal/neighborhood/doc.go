// Package neighborhood implements fixed-radius spatial filters: each output
// pixel is computed from the corresponding input pixel and its neighbors.
//
// # Border policy
//
// Every filter copies the outer band of the image, as wide as its radius
// (1 for 3×3 windows, 2 for the 5×5 Gaussian), unchanged from the input. Only
// pixels whose whole neighborhood lies inside the grid are recomputed, so a
// grid no larger than 2*radius in either direction comes back unchanged.
//
// # Filters
//
//   - Rank: Mean, Min, Max, Median, Order, ConservativeSmoothing
//   - Convolution: GaussianBlur, Convolve
//   - Edges: Prewitt, Sobel, Laplacian
//   - Morphology (binary input, cross structuring element):
//     Dilate, Erode, Open, Close, Contour
//
// Color channels are filtered independently; alpha is taken from the center
// pixel. Filters read only their input, never their own output, and interior
// rows are computed in parallel.
package neighborhood
