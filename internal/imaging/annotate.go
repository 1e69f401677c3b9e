package imaging

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default outline colours for annotated previews.
const (
	PrintAreaColor = "#00c8ff"
	PasteBoxColor  = "#ff2d55"
)

// Box is a rectangle to outline on a preview, with an optional caption.
type Box struct {
	Rect     image.Rectangle
	ColorHex string
	// Caption is drawn above the top-left corner in basicfont.Face7x13.
	Caption string
}

// Annotate returns a copy of img with each box outlined at the given
// thickness. Boxes are clipped to the canvas; img is not modified.
//
// Colours are "#RRGGBB". An unparseable colour falls back to PasteBoxColor.
func Annotate(img image.Image, boxes []Box, thickness int) *image.NRGBA {
	if thickness < 1 {
		thickness = 1
	}
	result := imaging.Clone(img)

	for _, b := range boxes {
		c := parseHexColor(b.ColorHex, PasteBoxColor)
		r := b.Rect.Canon()
		drawOutline(result, r, thickness, c)
		if b.Caption != "" {
			drawLabel(result, r.Min.X, r.Min.Y-labelHeight-thickness, b.Caption, color.NRGBA{255, 255, 255, 255}, c)
		}
	}
	return result
}

// RectCaption formats a rectangle as "x,y wxh" for preview captions.
func RectCaption(r image.Rectangle) string {
	return fmt.Sprintf("%d,%d %dx%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}

// parseHexColor parses "#RRGGBB" via go-colorful, returning fallback on error.
func parseHexColor(hex, fallback string) color.NRGBA {
	hex = strings.TrimSpace(hex)
	if hex != "" && !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallback)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func drawOutline(img *image.NRGBA, r image.Rectangle, thickness int, c color.NRGBA) {
	if r.Empty() {
		return
	}
	t := thickness
	if t > r.Dx() {
		t = r.Dx()
	}
	if t > r.Dy() {
		t = r.Dy()
	}
	// top, bottom, left, right bands
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// labelHeight is the caption band: one Face7x13 line plus a pixel of
// padding above and below.
const labelHeight = 15

// drawLabel draws text on a filled background at (x, y), clipped to img.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	if y < img.Bounds().Min.Y {
		y = img.Bounds().Min.Y
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+1+basicfont.Face7x13.Ascent),
	}
	labelWidth := d.MeasureString(text).Ceil()
	fillRect(img, image.Rect(x-2, y, x+labelWidth+2, y+labelHeight), bg)
	d.DrawString(text)
}
