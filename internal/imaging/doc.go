// Package imaging connects the pixel engine to files and clients.
//
// It decodes image files into raster grids, encodes results for transport or
// saves them to disk, parses client-supplied operation parameters and reports
// pixel colors and histogram summaries. The engine packages never touch files;
// everything format-related lives here.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Formats
//
// Decoding supports PNG, JPEG and GIF from the standard library, BMP, TIFF and
// WebP from golang.org/x/image and QOI from github.com/xfmoulet/qoi. Saving
// selects the encoder from the output file extension.
//
// # Parameters
//
// Numeric parameters arrive as JSON numbers or as text. Text may use a comma
// as the decimal separator, so "0,5" and "0.5" are equivalent. ParseParams
// checks each value against the precondition of the operation that reads it
// and reports failures with the engine's sentinel errors.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Cached grids are shared and must be
// treated as read-only; use Put to replace an entry.
package imaging
