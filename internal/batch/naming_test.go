package batch

import (
	"path/filepath"
	"testing"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name     string
		layout   Layout
		design   string
		template string
		want     string
	}{
		{"folder", Folder, "Cat", "Model_Navy", "Cat/Cat_Model_Navy_tee.png"},
		{"flat", Flat, "Cat", "Model_Navy", "Cat_Model_Navy.png"},
		{"slash in label", Flat, "a/b", "t", "a_b_t.png"},
		{"dot dot label", Folder, "..", "t", "graphic/graphic_t_tee.png"},
		{"empty label", Flat, "", "Plain_White", "graphic_Plain_White.png"},
		{"spaces trimmed", Flat, " Cat ", "t", "Cat_t.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputName(tt.layout, tt.design, tt.template); got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("out", Folder, "Cat", "Plain_White")
	want := filepath.Join("out", "Cat", "Cat_Plain_White_tee.png")
	if got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"", Folder, false},
		{"folder", Folder, false},
		{"FLAT", Flat, false},
		{" flat ", Flat, false},
		{"zip", Folder, true},
	}
	for _, tt := range tests {
		got, err := ParseLayout(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLayout(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLayout(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLayout_Text(t *testing.T) {
	var l Layout
	if err := l.UnmarshalText([]byte("flat")); err != nil || l != Flat {
		t.Fatalf("UnmarshalText(flat): %v, %v", l, err)
	}
	b, err := l.MarshalText()
	if err != nil || string(b) != "flat" {
		t.Errorf("MarshalText: %q, %v", b, err)
	}
	if err := l.UnmarshalText([]byte("nested")); err == nil {
		t.Error("UnmarshalText should reject unknown layouts")
	}
}
