package batch

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout selects how generated mockups are arranged under the output directory.
type Layout int

const (
	// Folder writes {design}/{design}_{template}_tee.png, one folder per design.
	Folder Layout = iota
	// Flat writes {design}_{template}.png directly into the output directory.
	Flat
)

func (l Layout) String() string {
	switch l {
	case Flat:
		return "flat"
	case Folder:
		return "folder"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// MarshalText implements encoding.TextMarshaler.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := ParseLayout(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLayout parses "flat" or "folder". The empty string is Folder.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "folder":
		return Folder, nil
	case "flat":
		return Flat, nil
	}
	return Folder, fmt.Errorf("unknown layout %q (want flat or folder)", s)
}

// OutputName returns the slash-separated relative path of the mockup for a
// design/template pair.
func OutputName(layout Layout, designLabel, templateLabel string) string {
	d := sanitize(designLabel)
	t := sanitize(templateLabel)
	if layout == Flat {
		return d + "_" + t + ".png"
	}
	return d + "/" + d + "_" + t + "_tee.png"
}

// OutputPath joins OutputName onto dir using the OS separator.
func OutputPath(dir string, layout Layout, designLabel, templateLabel string) string {
	return filepath.Join(dir, filepath.FromSlash(OutputName(layout, designLabel, templateLabel)))
}

// sanitize keeps labels from escaping the output directory.
func sanitize(label string) string {
	label = strings.TrimSpace(label)
	label = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if r < 0x20 {
			return -1
		}
		return r
	}, label)
	if label == "" || label == "." || label == ".." {
		return "graphic"
	}
	return label
}
