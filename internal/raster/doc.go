// Package raster defines the pixel grid shared by the image editing engine.
//
// A Grid is a rectangular, row-major array of 8-bit RGBA pixels with its
// origin at the top-left corner, laid out like image.NRGBA but with one Pixel
// value per element. A 0×0 grid is valid and every engine operation accepts it.
//
// # Ownership
//
// Engine operations treat their inputs as read-only and return freshly
// allocated grids owned by the caller. Nothing is cached between calls.
//
// # Errors
//
// Failures are reported as *OpError values wrapping one of the sentinel
// errors (ErrDimensionMismatch, ErrDivisionByZero, ErrInvalidParameter,
// ErrNotBinaryImage, ErrNotRectangular). Use errors.Is to classify them.
//
// # Conversion
//
// FromImage and Grid.NRGBA convert at the boundary with decoders and encoders.
// Conversion goes through non-premultiplied NRGBA, so channel values survive a
// round trip unchanged.
package raster
