package placement

import "fmt"

// Params is the tuning bundle applied to one template category.
type Params struct {
	// PaddingRatio shrinks the fit-scaled design to leave a margin inside the
	// print area. Must be in (0, 1].
	PaddingRatio float64 `json:"padding_ratio" yaml:"padding_ratio"`

	// VerticalOffsetPct anchors the design's top edge this many percent of the
	// print area's height below the print area's top edge. Must be in
	// [-50, 100]. Negative values lift the design above the detected top.
	VerticalOffsetPct float64 `json:"vertical_offset_pct" yaml:"vertical_offset_pct"`
}

// Validate checks that both values are inside their documented ranges.
func (p Params) Validate() error {
	if !(p.PaddingRatio > 0 && p.PaddingRatio <= 1) {
		return fmt.Errorf("padding ratio %v out of range (0, 1]", p.PaddingRatio)
	}
	if !(p.VerticalOffsetPct >= -50 && p.VerticalOffsetPct <= 100) {
		return fmt.Errorf("vertical offset %v%% out of range [-50, 100]", p.VerticalOffsetPct)
	}
	return nil
}

// Profiles holds the per-category parameters. Operators tune these; nothing
// in the engine computes them.
type Profiles struct {
	Plain Params `json:"plain" yaml:"plain"`
	Model Params `json:"model" yaml:"model"`
}

// DefaultProfiles returns the stock tuning: plain shirts at 45% padding
// lifted 7%, model shots at 35% padding dropped 3%.
func DefaultProfiles() Profiles {
	return Profiles{
		Plain: Params{PaddingRatio: 0.45, VerticalOffsetPct: -7},
		Model: Params{PaddingRatio: 0.35, VerticalOffsetPct: 3},
	}
}

// For returns the parameters for a category.
func (p Profiles) For(c Category) Params {
	if c == Model {
		return p.Model
	}
	return p.Plain
}

// ForLabel classifies a template label and returns its category and params.
func (p Profiles) ForLabel(label string) (Category, Params) {
	c := Classify(label)
	return c, p.For(c)
}

// Validate checks both profiles.
func (p Profiles) Validate() error {
	if err := p.Plain.Validate(); err != nil {
		return fmt.Errorf("plain: %w", err)
	}
	if err := p.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return nil
}
