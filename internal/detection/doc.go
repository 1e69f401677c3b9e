// Package detection locates the printable area of a shirt template.
//
// A template is a product photo or render of a garment on a near-white
// backdrop. The detector isolates the garment silhouette and reports its
// axis-aligned bounding rectangle, which the placement engine uses to size
// and anchor a design.
//
// # Algorithm Overview
//
//  1. Flatten: transparent template pixels are composited onto white
//  2. Grayscale: ITU-R BT.601 luminance (0.299*R + 0.587*G + 0.114*B)
//  3. Smoothing: 5x5 Gaussian by default to suppress speckle
//  4. Inverse threshold: gray < 240 becomes foreground
//  5. Contours: 8-connected foreground components; only components that
//     touch the outer background are kept (holes and anything inside them
//     are ignored), each traced with Moore neighbour tracing
//  6. Selection: the contour with the largest enclosed (shoelace) area
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - BoundingRect is (X, Y, Width, Height); Rect() converts to an
//     image.Rectangle with exclusive max
//
// # Edge Softening
//
// Blurring bleeds dark edges outward. A mid-gray rectangle grows by about one
// pixel per side; a pure black one by up to two.
//
// # Thread Safety
//
// DetectPrintArea is a pure function of its inputs and may be called
// concurrently on different (or the same, read-only) images.
package detection
