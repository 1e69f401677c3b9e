package placement

import (
	"fmt"
	"strings"
)

// Category is the closed set of template kinds that carry their own
// placement tuning.
type Category int

const (
	// Plain is a flat-laid or ghost-mannequin shirt.
	Plain Category = iota
	// Model is a shirt photographed on a person.
	Model
)

// modelMarker is the case-insensitive substring that marks a model template.
const modelMarker = "model"

// Classify resolves a template's category from its identifying label,
// usually the upload filename. Any label containing "model" (any case) is a
// Model template; everything else is Plain.
func Classify(label string) Category {
	if strings.Contains(strings.ToLower(label), modelMarker) {
		return Model
	}
	return Plain
}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case Plain:
		return "plain"
	case Model:
		return "model"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory parses "plain" or "model" (any case).
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return Plain, nil
	case "model":
		return Model, nil
	default:
		return Plain, fmt.Errorf("unknown template category: %q", s)
	}
}
