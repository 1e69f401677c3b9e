package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCheckBackground(t *testing.T) {
	tests := []struct {
		name      string
		img       image.Image
		wantHex   string
		wantLight bool
	}{
		{"white", createInMemoryImage(40, 30, color.White), "#ffffff", true},
		{"off white", createInMemoryImage(40, 30, color.RGBA{254, 254, 254, 255}), "#fefefe", true},
		{"grey studio", createInMemoryImage(40, 30, color.RGBA{200, 200, 200, 255}), "#c8c8c8", false},
		{"black", createInMemoryImage(40, 30, color.Black), "#000000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckBackground(tt.img)
			if got.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", got.Hex, tt.wantHex)
			}
			if got.Light != tt.wantLight {
				t.Errorf("Light: got %v, want %v (distance %.4f)", got.Light, tt.wantLight, got.DistanceToWhite)
			}
			if got.Samples != 2*40+2*28 {
				t.Errorf("Samples: got %d, want %d", got.Samples, 2*40+2*28)
			}
		})
	}
}

func TestCheckBackground_IgnoresInterior(t *testing.T) {
	img := createInMemoryImage(20, 20, color.White)
	for y := 1; y < 19; y++ {
		for x := 1; x < 19; x++ {
			img.Set(x, y, color.Black)
		}
	}

	got := CheckBackground(img)
	if got.Hex != "#ffffff" || !got.Light {
		t.Errorf("interior leaked into border average: %+v", got)
	}
	if got.Lightness < 99.9 {
		t.Errorf("Lightness: got %.2f, want 100", got.Lightness)
	}
}

func TestCheckBackground_TransparentBorder(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))

	got := CheckBackground(img)
	if got.Samples != 0 {
		t.Errorf("Samples: got %d, want 0", got.Samples)
	}
	if !got.Light || got.Hex != "#ffffff" {
		t.Errorf("transparent border should report white: %+v", got)
	}
}

func TestCheckBackground_SinglePixel(t *testing.T) {
	got := CheckBackground(createInMemoryImage(1, 1, color.Black))
	if got.Samples != 1 {
		t.Errorf("Samples: got %d, want 1", got.Samples)
	}
}

func TestCheckBackground_Empty(t *testing.T) {
	got := CheckBackground(image.NewRGBA(image.Rectangle{}))
	if got.Samples != 0 || !got.Light {
		t.Errorf("empty image: got %+v", got)
	}
}
