package detection

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// fillRect paints a solid rectangle (x, y, w, h) onto img.
func fillRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			img.Set(px, py, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// assertRectNear checks that every edge of got lies within tol pixels of want.
func assertRectNear(t *testing.T, got, want BoundingRect, tol int) {
	t.Helper()
	if abs(got.X-want.X) > tol ||
		abs(got.Y-want.Y) > tol ||
		abs((got.X+got.Width)-(want.X+want.Width)) > tol ||
		abs((got.Y+got.Height)-(want.Y+want.Height)) > tol {
		t.Errorf("rect: got %+v, want %+v (±%d px)", got, want, tol)
	}
}

func TestDetectPrintArea_GrayRectangle(t *testing.T) {
	img := createTestImage(200, 160, color.White)
	fillRect(img, 40, 30, 100, 80, color.RGBA{128, 128, 128, 255})

	rect, ok := DetectPrintArea(img, DefaultOptions())
	if !ok {
		t.Fatal("expected a print area")
	}
	assertRectNear(t, rect, BoundingRect{X: 40, Y: 30, Width: 100, Height: 80}, 1)
}

func TestDetectPrintArea_BlackRectangleBleeds(t *testing.T) {
	img := createTestImage(1000, 1200, color.White)
	fillRect(img, 300, 400, 400, 500, color.Black)

	rect, ok := DetectPrintArea(img, DefaultOptions())
	if !ok {
		t.Fatal("expected a print area")
	}
	assertRectNear(t, rect, BoundingRect{X: 300, Y: 400, Width: 400, Height: 500}, 2)
}

func TestDetectPrintArea_EmptyImage(t *testing.T) {
	img := createTestImage(100, 100, color.White)

	if rect, ok := DetectPrintArea(img, DefaultOptions()); ok {
		t.Errorf("expected no print area on blank template, got %+v", rect)
	}
}

func TestDetectPrintArea_ZeroSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	if _, ok := DetectPrintArea(img, DefaultOptions()); ok {
		t.Error("expected no print area on empty image")
	}
}

func TestDetectPrintArea_NearWhiteIgnored(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	fillRect(img, 20, 20, 50, 50, color.RGBA{250, 250, 250, 255})

	if rect, ok := DetectPrintArea(img, DefaultOptions()); ok {
		t.Errorf("near-white content should be background, got %+v", rect)
	}
}

func TestDetectPrintArea_LargestWins(t *testing.T) {
	img := createTestImage(300, 200, color.White)
	fillRect(img, 10, 10, 20, 20, color.RGBA{100, 100, 100, 255})
	fillRect(img, 100, 40, 150, 120, color.RGBA{100, 100, 100, 255})

	rect, ok := DetectPrintArea(img, DefaultOptions())
	if !ok {
		t.Fatal("expected a print area")
	}
	assertRectNear(t, rect, BoundingRect{X: 100, Y: 40, Width: 150, Height: 120}, 1)
}

func TestDetectPrintArea_TieKeepsFirstInRasterOrder(t *testing.T) {
	gray := color.RGBA{100, 100, 100, 255}

	tests := []struct {
		name  string
		boxes [][2]int // top-left corners of equal 30x30 boxes
		want  BoundingRect
	}{
		{"upper beats lower-left", [][2]int{{20, 100}, {120, 10}}, BoundingRect{X: 120, Y: 10, Width: 30, Height: 30}},
		{"left beats right on the same row", [][2]int{{120, 40}, {20, 40}}, BoundingRect{X: 20, Y: 40, Width: 30, Height: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createTestImage(200, 160, color.White)
			for _, b := range tt.boxes {
				fillRect(img, b[0], b[1], 30, 30, gray)
			}

			rect, ok := DetectPrintArea(img, DefaultOptions())
			if !ok {
				t.Fatal("expected a print area")
			}
			assertRectNear(t, rect, tt.want, 1)
		})
	}
}

func TestDetectPrintArea_TransparentBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 120, 120))
	for y := 30; y < 90; y++ {
		for x := 20; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{90, 60, 200, 255})
		}
	}

	rect, ok := DetectPrintArea(img, DefaultOptions())
	if !ok {
		t.Fatal("expected a print area on transparent template")
	}
	assertRectNear(t, rect, BoundingRect{X: 20, Y: 30, Width: 80, Height: 60}, 1)
}

func TestDetectPrintArea_OutlineRingUsesOuterBorder(t *testing.T) {
	img := createTestImage(200, 200, color.White)
	gray := color.RGBA{120, 120, 120, 255}
	// 8px thick ring with a white hole and a blob inside the hole.
	fillRect(img, 40, 40, 120, 8, gray)
	fillRect(img, 40, 152, 120, 8, gray)
	fillRect(img, 40, 40, 8, 120, gray)
	fillRect(img, 152, 40, 8, 120, gray)
	fillRect(img, 90, 90, 20, 20, gray)

	rect, ok := DetectPrintArea(img, DefaultOptions())
	if !ok {
		t.Fatal("expected a print area")
	}
	assertRectNear(t, rect, BoundingRect{X: 40, Y: 40, Width: 120, Height: 120}, 1)
}

func TestDetectPrintArea_Deterministic(t *testing.T) {
	img := createTestImage(150, 150, color.White)
	fillRect(img, 30, 20, 60, 90, color.RGBA{60, 80, 30, 255})

	first, ok1 := DetectPrintArea(img, DefaultOptions())
	second, ok2 := DetectPrintArea(img, DefaultOptions())
	if ok1 != ok2 || first != second {
		t.Errorf("detection not deterministic: %+v/%v vs %+v/%v", first, ok1, second, ok2)
	}
}

func TestDetectPrintArea_CustomThreshold(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	fillRect(img, 20, 20, 60, 60, color.RGBA{200, 200, 200, 255})

	if _, ok := DetectPrintArea(img, Options{Threshold: 150}); ok {
		t.Error("light gray should be background with threshold 150")
	}
	if _, ok := DetectPrintArea(img, Options{Threshold: 240}); !ok {
		t.Error("light gray should be foreground with threshold 240")
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"zero", Options{}, Options{Threshold: 240, BlurKernel: 5}},
		{"even kernel", Options{Threshold: 200, BlurKernel: 4}, Options{Threshold: 200, BlurKernel: 5}},
		{"custom", Options{Threshold: 220, BlurKernel: 7}, Options{Threshold: 220, BlurKernel: 7}},
		{"huge kernel", Options{Threshold: 240, BlurKernel: 1501}, Options{Threshold: 240, BlurKernel: MaxBlurKernel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.withDefaults(); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	for _, k := range []int{0, 1, 5, MaxBlurKernel} {
		if err := (Options{BlurKernel: k}).Validate(); err != nil {
			t.Errorf("kernel %d: unexpected error %v", k, err)
		}
	}
	for _, k := range []int{-1, MaxBlurKernel + 1, 1501} {
		if err := (Options{BlurKernel: k}).Validate(); err == nil {
			t.Errorf("kernel %d should be rejected", k)
		}
	}
}

func TestBoundingRect_Rect(t *testing.T) {
	r := BoundingRect{X: 5, Y: 10, Width: 20, Height: 30}
	if got, want := r.Rect(), image.Rect(5, 10, 25, 40); got != want {
		t.Errorf("Rect: got %v, want %v", got, want)
	}
}

func TestGaussianKernel_Normalized(t *testing.T) {
	k := gaussianKernel(5)
	if k.MaxX() != 5 || k.MaxY() != 5 {
		t.Fatalf("kernel size: got %dx%d, want 5x5", k.MaxX(), k.MaxY())
	}

	var sum float64
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			sum += k.At(x, y)
		}
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("kernel sum: got %f, want 1", sum)
	}
	if k.At(2, 2) <= k.At(0, 0) {
		t.Error("kernel centre should outweigh its corner")
	}
}

func TestGaussianKernel_BinomialWeights(t *testing.T) {
	k := gaussianKernel(5)

	tests := []struct {
		x, y int
		want float64
	}{
		{2, 2, 0.375 * 0.375},
		{0, 0, 0.0625 * 0.0625},
		{1, 2, 0.25 * 0.375},
	}
	for _, tt := range tests {
		if got := k.At(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGaussianKernel_LargeWindowSampled(t *testing.T) {
	k := gaussianKernel(9)

	var sum float64
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			sum += k.At(x, y)
		}
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("kernel sum: got %f, want 1", sum)
	}
	if k.At(0, 4) != k.At(8, 4) {
		t.Error("kernel should be symmetric")
	}
}
