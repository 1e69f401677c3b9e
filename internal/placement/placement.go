package placement

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/shirt-mockup-mcp/internal/detection"
)

// ErrDegenerateInput is returned when a design, template, or print area has
// zero width or height, which would make the fit ratios undefined.
var ErrDegenerateInput = errors.New("degenerate input: zero width or height")

// Result fully determines how a design is resized and positioned on a
// template. Paste coordinates may be negative or run past the template edge;
// the compositor clips.
type Result struct {
	ScaledWidth  int `json:"scaled_width"`
	ScaledHeight int `json:"scaled_height"`
	PasteX       int `json:"paste_x"`
	PasteY       int `json:"paste_y"`
}

// Rect returns the destination rectangle of the scaled design in template
// coordinates (max exclusive).
func (r Result) Rect() image.Rectangle {
	return image.Rect(r.PasteX, r.PasteY, r.PasteX+r.ScaledWidth, r.PasteY+r.ScaledHeight)
}

// Compute works out the scaled design size and paste point.
//
// Parameters:
//   - design: design width and height in pixels.
//   - template: template width and height in pixels.
//   - rect: detected print area, or nil when detection found nothing.
//   - params: tuning for the template's category.
//
// # With a print area (sx, sy, sw, sh)
//
//	scale  = min(sw/dw, sh/dh, 1.0) * padding_ratio
//	scaled = floor(d * scale)              (at least 1 px)
//	x      = sx + floor((sw - scaled_w) / 2)
//	y      = sy + floor(sh * vertical_offset_pct / 100)
//
// The 1.0 clamp means a design is never enlarged, even on a huge print area.
//
// # Without a print area
//
// The design keeps its original size and is centered on the whole canvas:
//
//	x = floor((tw - dw) / 2), y = floor((th - dh) / 2)
//
// # Errors
//
//   - ErrDegenerateInput (wrapped) for zero-sized design, template, or rect
//   - a validation error when params are out of range
func Compute(design, template image.Point, rect *detection.BoundingRect, params Params) (Result, error) {
	if design.X <= 0 || design.Y <= 0 {
		return Result{}, fmt.Errorf("design is %dx%d: %w", design.X, design.Y, ErrDegenerateInput)
	}
	if template.X <= 0 || template.Y <= 0 {
		return Result{}, fmt.Errorf("template is %dx%d: %w", template.X, template.Y, ErrDegenerateInput)
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}

	if rect == nil {
		return Result{
			ScaledWidth:  design.X,
			ScaledHeight: design.Y,
			PasteX:       floorDiv(template.X-design.X, 2),
			PasteY:       floorDiv(template.Y-design.Y, 2),
		}, nil
	}

	if rect.Width <= 0 || rect.Height <= 0 {
		return Result{}, fmt.Errorf("print area is %dx%d: %w", rect.Width, rect.Height, ErrDegenerateInput)
	}

	dw, dh := float64(design.X), float64(design.Y)
	sw, sh := float64(rect.Width), float64(rect.Height)

	scale := math.Min(math.Min(sw/dw, sh/dh), 1.0) * params.PaddingRatio
	width := clampSize(int(math.Floor(dw*scale)), design.X)
	height := clampSize(int(math.Floor(dh*scale)), design.Y)

	return Result{
		ScaledWidth:  width,
		ScaledHeight: height,
		PasteX:       rect.X + floorDiv(rect.Width-width, 2),
		PasteY:       rect.Y + int(math.Floor(sh*params.VerticalOffsetPct/100)),
	}, nil
}

// clampSize keeps a scaled dimension within [1, limit].
func clampSize(v, limit int) int {
	if v < 1 {
		return 1
	}
	if v > limit {
		return limit
	}
	return v
}

// floorDiv divides rounding toward negative infinity, so oversized designs
// get consistently negative offsets.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
