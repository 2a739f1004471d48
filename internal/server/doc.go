// Package server implements the MCP (Model Context Protocol) server for image editing.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color and Intensity:
//   - image_sample_color: Get color at pixel
//   - image_sample_colors_multi: Sample multiple points
//   - image_histogram: Intensity histogram summary
//   - image_validate_binary: Check the morphology precondition
//
// Editing:
//   - image_operations: List the operation catalog
//   - image_apply: Run one operation on one or two images
//   - image_equalize: Histogram equalization with before/after histograms
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process. Results
// saved with output_path are cached under that path, so operations can be
// chained by passing one call's output_path as the next call's path.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "divide: division by zero"
//
// Logs go to the configured logger, never to stdout.
package server
