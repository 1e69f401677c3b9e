// Package imaging provides the image I/O layer of the mockup server.
//
// It decodes designs and templates at the boundary, caches them for reuse,
// encodes composites as PNG, and produces annotated previews. Detection and
// placement never touch files; they receive decoded image.Image values from
// here.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left), Max is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared
// between callers and must be treated as read-only; every operation that
// draws returns a fresh copy.
//
// # Error Handling
//
// Unreadable or undecodable inputs are reported as *DecodeError naming the
// source, so batch callers can attribute failures per file. Encoding and
// write errors are wrapped with fmt.Errorf.
//
// # Supported Formats
//
// PNG, JPEG, GIF, BMP, TIFF and WebP are decoded. Output is always PNG so
// transparency in templates survives.
package imaging
