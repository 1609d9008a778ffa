package report

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

type recordingDrawer struct {
	calls []string
	fail  bool
}

func (d *recordingDrawer) DrawText(dst draw.Image, src image.Image, text string, size float64, x, y int) error {
	d.calls = append(d.calls, text)
	if d.fail {
		return errors.New("no glyph")
	}
	// mark a 4x4 block at the pen position
	draw.Draw(dst, image.Rect(x, y, x+4, y+4), src, image.Point{}, draw.Over)
	return nil
}

func whiteImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func TestRenderOverlay(t *testing.T) {
	regions := []fontfit.TextRegion{fittedRegion("a", 16), unfitRegion("b")}
	baseline := 3
	regions[0].FittedBaseline = &baseline

	d := &recordingDrawer{}
	out := RenderOverlay(whiteImage(80, 60), regions, d, DefaultOverlayColor, nil)

	if len(d.calls) != 1 || d.calls[0] != "a" {
		t.Fatalf("DrawText calls: got %v, want [a]", d.calls)
	}

	// bbox (10, 20) + baseline 3
	got := out.NRGBAAt(11, 24)
	if got.R != 255 || got.G > 140 || got.G < 110 {
		t.Errorf("overlay pixel should be white blended with half red, got %v", got)
	}
	if bg := out.NRGBAAt(70, 50); bg != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("untouched pixel changed: %v", bg)
	}
}

func TestRenderOverlay_DrawFailureSkipped(t *testing.T) {
	d := &recordingDrawer{fail: true}
	out := RenderOverlay(whiteImage(80, 60), []fontfit.TextRegion{fittedRegion("a", 16)}, d, DefaultOverlayColor, nil)
	if out.Bounds().Dx() != 80 {
		t.Errorf("output size changed: %v", out.Bounds())
	}
}

func TestRenderOverlay_WithRenderer(t *testing.T) {
	r, err := fontfit.NewRenderer("", nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	region := fittedRegion("Hello", 20)
	out := RenderOverlay(whiteImage(120, 60), []fontfit.TextRegion{region}, r, DefaultOverlayColor, nil)

	changed := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			if out.NRGBAAt(x, y).G < 255 {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("overlay drew nothing")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#FF0000", 128)
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c != (color.NRGBA{R: 255, A: 128}) {
		t.Errorf("got %v", c)
	}

	if _, err := ParseColor("red", 128); err == nil {
		t.Error("ParseColor should reject names")
	}
	if _, err := ParseColor("#00FF00", 256); err == nil {
		t.Error("ParseColor should reject alpha > 255")
	}
}
