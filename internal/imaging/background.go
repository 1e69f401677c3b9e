package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// lightBackgroundMaxDistance is the CIEDE2000 distance from pure white
// (go-colorful scale, 0-1) above which a backdrop counts as non-white.
// Light grey studio paper (#c8c8c8) sits at about 0.12.
const lightBackgroundMaxDistance = 0.1

// BackgroundReport describes the colour of a template's border ring.
//
// Print-area detection only works on near-white backdrops. The report lets
// callers warn before a detection miss silently falls back to centering.
type BackgroundReport struct {
	// Hex is the average border colour "#RRGGBB".
	Hex string `json:"hex"`

	// Lightness is CIE L* of the average colour (0-100).
	Lightness float64 `json:"lightness"`

	// DistanceToWhite is the CIEDE2000 distance to #FFFFFF (0 = white).
	DistanceToWhite float64 `json:"distance_to_white"`

	// Light is true when the backdrop is close enough to white for detection.
	Light bool `json:"light"`

	// Samples is the number of opaque border pixels averaged.
	Samples int `json:"samples"`
}

// CheckBackground averages the outermost ring of pixels of img.
//
// Fully transparent pixels are skipped; a template whose border is entirely
// transparent reports white, because detection flattens it onto white.
//
// # Sampling
//
// The ring is the first and last row and column. For large images every
// pixel of the ring is read; that is at most 2*(w+h) samples.
func CheckBackground(img image.Image) BackgroundReport {
	bounds := img.Bounds()
	var r, g, b float64
	n := 0

	sample := func(x, y int) {
		c, ok := colorful.MakeColor(img.At(x, y))
		if !ok {
			return // fully transparent
		}
		r += c.R
		g += c.G
		b += c.B
		n++
	}

	if !bounds.Empty() {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			sample(x, bounds.Min.Y)
			if bounds.Dy() > 1 {
				sample(x, bounds.Max.Y-1)
			}
		}
		for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
			sample(bounds.Min.X, y)
			if bounds.Dx() > 1 {
				sample(bounds.Max.X-1, y)
			}
		}
	}

	avg := colorful.Color{R: 1, G: 1, B: 1}
	if n > 0 {
		avg = colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}.Clamped()
	}

	white := colorful.Color{R: 1, G: 1, B: 1}
	l, _, _ := avg.Lab()
	dist := avg.DistanceCIEDE2000(white)

	return BackgroundReport{
		Hex:             avg.Hex(),
		Lightness:       l * 100,
		DistanceToWhite: dist,
		Light:           dist <= lightBackgroundMaxDistance,
		Samples:         n,
	}
}
