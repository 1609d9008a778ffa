// Package imaging provides the image plumbing around font fitting: decoding
// and caching screenshots, normalizing them to a fixed width, and cropping
// expanded text regions.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based with (0,0) at the
// top-left corner; X increases rightward and Y increases downward. Rectangles
// are inclusive at Min and exclusive at Max.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Decoded images handed out by the
// cache must be treated as read-only; every function in this package returns
// fresh images instead of mutating its input.
//
// # Error Handling
//
// Any failure to open or decode a source image is reported as *LoadError so
// callers can abort the whole request with errors.As. Other functions return
// plain wrapped errors for invalid arguments and encoding failures.
package imaging
