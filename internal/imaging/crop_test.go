package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestExpandRect(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name       string
		x, y, w, h int
		ratio      float64
		want       image.Rectangle
	}{
		{"interior", 50, 40, 40, 20, 0.2, image.Rect(42, 36, 98, 64)},
		{"no expansion", 50, 40, 40, 20, 0, image.Rect(50, 40, 90, 60)},
		{"truncated margins", 50, 40, 9, 9, 0.2, image.Rect(49, 39, 60, 50)},
		{"clamped at origin", 2, 1, 40, 20, 0.2, image.Rect(0, 0, 50, 25)},
		{"clamped at far edge", 180, 90, 40, 20, 0.2, image.Rect(172, 86, 200, 100)},
		{"outside image", 300, 300, 10, 10, 0.2, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExpandRect(bounds, tt.x, tt.y, tt.w, tt.h, tt.ratio)
			if got != tt.want && !(got.Empty() && tt.want.Empty()) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropRect(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x >= 10 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	out := CropRect(img, image.Rect(8, 5, 14, 9))

	if out.Bounds() != image.Rect(0, 0, 6, 4) {
		t.Fatalf("bounds: got %v, want (0,0)-(6,4)", out.Bounds())
	}
	// column 2 of the crop is source column 10, the first black one
	if c := out.NRGBAAt(1, 0); c.R != 255 {
		t.Errorf("pixel (1,0): got %v, want white", c)
	}
	if c := out.NRGBAAt(2, 0); c.R != 0 {
		t.Errorf("pixel (2,0): got %v, want black", c)
	}
}
