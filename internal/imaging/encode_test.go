package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestEncodePNG_KeepsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 77})

	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	got := color.NRGBAModel.Convert(decoded.At(1, 1)).(color.NRGBA)
	if got != (color.NRGBA{10, 20, 30, 77}) {
		t.Errorf("pixel: got %v, want {10 20 30 77}", got)
	}
}

func TestEncodeResult(t *testing.T) {
	res, err := EncodeResult(createInMemoryImage(30, 20, color.White))
	if err != nil {
		t.Fatalf("EncodeResult failed: %v", err)
	}

	if res.Width != 30 || res.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", res.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("payload is not a PNG: %v", err)
	}
}

func TestSavePNG_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Cat", "Cat_Model_Navy_tee.png")

	if err := SavePNG(createInMemoryImage(8, 8, color.Black), path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if cfg.Width != 8 || cfg.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", cfg.Width, cfg.Height)
	}
}

func TestSavePNG_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	// A regular file where a directory is needed
	err := SavePNG(createInMemoryImage(2, 2, color.Black), filepath.Join(blocker, "out.png"))
	if err == nil {
		t.Error("SavePNG should fail when the parent is a file")
	}
}
