package placement

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
)

// Filter is a resampling filter used to shrink designs.
type Filter = imaging.ResampleFilter

// DefaultFilter is the resampling filter used to shrink designs (bicubic).
var DefaultFilter = imaging.CatmullRom

type options struct {
	filter Filter
}

// Option customizes Composite.
type Option func(*options)

// WithFilter selects the resampling filter used when the design is scaled.
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// filters maps config names to resampling filters.
var filters = map[string]Filter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"bicubic":    imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// FilterByName resolves a filter name such as "catmullrom" or "lanczos".
// An empty name selects DefaultFilter.
func FilterByName(name string) (Filter, error) {
	if name == "" {
		return DefaultFilter, nil
	}
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		return Filter{}, fmt.Errorf("unknown resample filter: %s", name)
	}
	return f, nil
}

// Composite places a design onto a copy of a template.
//
// The placement is computed with Compute, the design is resized to the
// computed size, and the result is blended onto a duplicate of the template
// using the design's own alpha as the mask:
//
//	out = template*(1-a) + design*a     (every channel, alpha included)
//
// Fully transparent design pixels leave the template untouched. Parts of the
// design falling outside the template are clipped. Neither input is
// modified, and identical inputs always produce identical output.
//
// Returns the new image (with bounds starting at 0,0) and the placement used.
func Composite(design, template image.Image, rect *detection.BoundingRect, params Params, opts ...Option) (*image.NRGBA, Result, error) {
	o := options{filter: DefaultFilter}
	for _, opt := range opts {
		opt(&o)
	}

	res, err := Compute(design.Bounds().Size(), template.Bounds().Size(), rect, params)
	if err != nil {
		return nil, Result{}, err
	}

	var layer *image.NRGBA
	if res.ScaledWidth == design.Bounds().Dx() && res.ScaledHeight == design.Bounds().Dy() {
		layer = imaging.Clone(design)
	} else {
		layer = imaging.Resize(design, res.ScaledWidth, res.ScaledHeight, o.filter)
	}

	out := imaging.Clone(template)
	blendMask(out, layer, image.Pt(res.PasteX, res.PasteY))

	return out, res, nil
}

// blendMask linearly interpolates every channel of dst toward src using
// src's alpha, clipping to dst's bounds.
func blendMask(dst, src *image.NRGBA, at image.Point) {
	pasteRect := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	inter := pasteRect.Intersect(dst.Bounds())
	if inter.Empty() {
		return
	}

	for y := inter.Min.Y; y < inter.Max.Y; y++ {
		di := dst.PixOffset(inter.Min.X, y)
		si := src.PixOffset(src.Bounds().Min.X+inter.Min.X-at.X, src.Bounds().Min.Y+y-at.Y)
		for x := inter.Min.X; x < inter.Max.X; x++ {
			a := uint32(src.Pix[si+3])
			switch a {
			case 0:
			case 255:
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			default:
				for c := 0; c < 4; c++ {
					d := uint32(dst.Pix[di+c])
					s := uint32(src.Pix[si+c])
					dst.Pix[di+c] = uint8((d*(255-a) + s*a + 127) / 255)
				}
			}
			di += 4
			si += 4
		}
	}
}
