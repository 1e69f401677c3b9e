package detection

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
)

const (
	// DefaultThreshold is the luminance cutoff (0-255) below which a blurred
	// pixel counts as garment. Tuned for product shots on a near-white backdrop.
	DefaultThreshold uint8 = 240

	// DefaultBlurKernel is the side length of the smoothing window (radius 2).
	DefaultBlurKernel = 5

	// MaxBlurKernel bounds the smoothing window. Cost grows with its square.
	MaxBlurKernel = 31
)

// BoundingRect is an axis-aligned pixel rectangle locating the printable area
// of a template. Coordinates are 0-based and relative to the template's
// bounds origin.
type BoundingRect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the bounding rect to an image.Rectangle (max exclusive).
func (r BoundingRect) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Options tunes the print-area detector. Zero values select the defaults.
type Options struct {
	// Threshold is the inverse-binarization cutoff. Pixels darker than this
	// become foreground.
	Threshold uint8 `json:"threshold" yaml:"threshold"`

	// BlurKernel is the odd window size of the Gaussian smoothing pass.
	// Even values are rounded up to the next odd size; values above
	// MaxBlurKernel are capped.
	BlurKernel int `json:"blur_kernel" yaml:"blur_kernel"`
}

// DefaultOptions returns the detector defaults (threshold 240, 5x5 blur).
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, BlurKernel: DefaultBlurKernel}
}

// Validate reports a blur kernel outside [0, MaxBlurKernel].
func (o Options) Validate() error {
	if o.BlurKernel < 0 || o.BlurKernel > MaxBlurKernel {
		return fmt.Errorf("blur_kernel %d out of range [0, %d]", o.BlurKernel, MaxBlurKernel)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.BlurKernel <= 0 {
		o.BlurKernel = DefaultBlurKernel
	}
	if o.BlurKernel > MaxBlurKernel {
		o.BlurKernel = MaxBlurKernel
	}
	if o.BlurKernel%2 == 0 {
		o.BlurKernel++
	}
	return o
}

// DetectPrintArea isolates the bounding rectangle of a template's
// non-background content.
//
// The template is flattened onto white, converted to BT.601 luminance,
// smoothed with a small Gaussian, and inverse-thresholded. The external
// contours of the resulting foreground are traced and the one enclosing the
// largest area wins; exact ties keep the first contour in raster order.
//
// The second return value is false when nothing darker than the threshold is
// found. That is the expected outcome for blank or non-white-backdrop
// templates and callers fall back to centering on the full canvas.
//
// # Limitations
//
// Detection assumes a near-white background. Templates shot against a dark or
// saturated backdrop binarize to a single full-frame blob or nothing at all.
func DetectPrintArea(template image.Image, opts Options) (BoundingRect, bool) {
	opts = opts.withDefaults()

	bounds := template.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return BoundingRect{}, false
	}

	// Transparent pixels read as backdrop, not as black.
	flat := imaging.Overlay(imaging.New(width, height, color.White), template, image.Pt(0, 0), 1.0)
	gray := effect.GrayscaleWithWeights(flat, 0.299, 0.587, 0.114)
	blurred := convolution.Convolve(gray, gaussianKernel(opts.BlurKernel), &convolution.Options{
		Bias:      0.5, // round instead of truncate
		KeepAlpha: true,
	})

	m := binarizeInverse(blurred, opts.Threshold)
	contours := findExternalContours(m)
	if len(contours) == 0 {
		return BoundingRect{}, false
	}

	best := 0
	for i := 1; i < len(contours); i++ {
		if contours[i].area > contours[best].area {
			best = i
		}
	}

	c := contours[best]
	return BoundingRect{
		X:      c.minX,
		Y:      c.minY,
		Width:  c.maxX - c.minX + 1,
		Height: c.maxY - c.minY + 1,
	}, true
}

// smallGaussians are the fixed binomial weights used for odd windows up to 7
// when no sigma is given. Larger windows derive sigma from the size.
var smallGaussians = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// gaussianKernel builds a normalized size x size separable Gaussian kernel.
// Sizes 1-7 use smallGaussians; larger sizes use
// sigma = 0.3*((size-1)*0.5-1)+0.8.
func gaussianKernel(size int) convolution.Matrix {
	weights, ok := smallGaussians[size]
	if !ok {
		weights = sampledGaussian(size)
	}

	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			k.Matrix[y*size+x] = weights[x] * weights[y]
		}
	}
	return k.Normalized()
}

func sampledGaussian(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	radius := size / 2

	weights := make([]float64, size)
	for i := range weights {
		x := float64(i - radius)
		weights[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
	}
	return weights
}

// binarizeInverse marks pixels whose gray level is strictly below level.
// The input is a grayscale RGBA so only the red channel is read.
func binarizeInverse(img *image.RGBA, level uint8) *mask {
	bounds := img.Bounds()
	m := &mask{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		fg:     make([]bool, bounds.Dx()*bounds.Dy()),
	}
	for y := 0; y < m.height; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < m.width; x++ {
			m.fg[y*m.width+x] = row[x*4] < level
		}
	}
	return m
}
