package sprig

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestScreenshotName(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"after-click", "after-click"},
		{"list: selected/2", "list__selected_2"},
		{" v1.2 ", "v1.2"},
	}
	for _, tt := range tests {
		if got := screenshotName(tt.label); got != tt.want {
			t.Errorf("screenshotName(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{255, 127, 0, 128}},
		{1, color.NRGBA{10, 20, 30, 255}},
		{2, color.NRGBA{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
	if pixels[0] != 128 {
		t.Error("input pixels were modified")
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 1, color.NRGBA{1, 2, 3, 255})
	if err := writePNG(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 1 || g>>8 != 2 || b>>8 != 3 {
		t.Errorf("pixel = %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestWritePNGBadDir(t *testing.T) {
	err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestScreenshotQueue(t *testing.T) {
	h := NewHUD(10, 10)
	h.Screenshot("a")
	h.Screenshot("b")
	if len(h.screenshotQueue) != 2 {
		t.Errorf("queue = %v", h.screenshotQueue)
	}
	h.SetScreenshotDir("out")
	if h.screenshotDir != "out" {
		t.Error("screenshot dir not set")
	}
}
