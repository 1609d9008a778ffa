// Package server implements the MCP (Model Context Protocol) server for
// font-size fitting.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - Input: JSON-RPC requests on stdin
//   - Output: JSON-RPC responses on stdout (logs go to stderr)
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image handling:
//   - image_load: Load an image and report its metadata
//   - image_dimensions: Width and height
//   - image_normalize: Flatten and rescale to the fitting width
//
// Font fitting:
//   - fontfit_region: Fit one text line given its text and box
//   - fontfit_process_image: Full pipeline over a screenshot
//   - fontfit_get_result: Fetch a stored pipeline result
//
// # Error Handling
//
// Errors use JSON-RPC codes:
//   - -32601: Method not found
//   - -32602: Invalid params (bad arguments, unknown tool, invalid region or bounds)
//   - -32000: Tool execution failed (unreadable image, OCR failure, storage error)
//
// A region for which no font size matched is not an error: the result has a
// null font_size and fit_quality 0.
//
// # Image Caching
//
// Decoded images are cached by path, so repeated fontfit_region calls on
// one screenshot decode it once. fontfit_process_image reuses a cached
// source but never adds to or evicts from the cache.
package server
