// Package pointwise implements pixel-independent image operations: every
// output pixel depends only on the input pixel(s) at the same coordinate.
//
// # Operations
//
// Two grids of identical size (ErrDimensionMismatch otherwise):
//   - Add: saturating math on all four channels
//   - Subtract, AbsoluteDifference: saturating RGB math, opaque result
//   - Average: saturating sum halved, alpha included
//   - Blend: ratio*a + (1-ratio)*b, alpha included
//
// One grid and a scalar (alpha copied from the source):
//   - AddValue, SubtractValue, Multiply, Divide (ErrDivisionByZero on 0)
//
// One grid:
//   - Grayscale, Negative, Threshold
//   - FlipLeftToRight, FlipTopToBottom
//   - Histogram, Equalize
//
// Results are rounded to the nearest integer and clamped to [0, 255].
// No function mutates its input; rows are processed in parallel.
package pointwise
