package report

import (
	"image/color"
	"testing"

	"github.com/ironsheep/fontfit-mcp/internal/fontfit"
)

func TestAnnotate(t *testing.T) {
	src := whiteImage(120, 80)
	regions := []fontfit.TextRegion{fittedRegion("a", 16), unfitRegion("b")}

	out := Annotate(src, regions, true)

	// bbox (10,20) 40x16: green outline on the top edge
	if got := out.NRGBAAt(30, 20); got != boxColor {
		t.Errorf("box outline pixel: got %v, want %v", got, boxColor)
	}
	// leader line runs from the label backing down to the box
	if got := out.NRGBAAt(10, 17); got != labelColor {
		t.Errorf("leader pixel: got %v, want %v", got, labelColor)
	}
	// the label is drawn in orange somewhere above the box
	found := false
	for y := 0; y < 15; y++ {
		for x := 12; x < 120; x++ {
			if c := out.NRGBAAt(x, y); c.B < 200 && c.R > 200 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no label pixels above the box")
	}
	if src.NRGBAAt(30, 20) != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("Annotate modified its input")
	}
}

func TestAnnotate_SkipsUnfit(t *testing.T) {
	src := whiteImage(60, 60)
	r := unfitRegion("b")
	r.BBox = fontfit.BBox{X: 10, Y: 20, Width: 20, Height: 10}

	out := Annotate(src, []fontfit.TextRegion{r}, true)
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			if out.NRGBAAt(x, y) != src.NRGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) changed for an unfit region", x, y)
			}
		}
	}
}

func TestDrawDetections(t *testing.T) {
	r := fittedRegion("Settings", 16)
	r.Polygon = [][2]float64{{10, 20}, {50, 20}, {50, 36}, {10, 36}}

	out := DrawDetections(whiteImage(80, 60), []fontfit.TextRegion{r})
	if got := out.NRGBAAt(30, 20); got != boxColor {
		t.Errorf("polygon edge: got %v, want %v", got, boxColor)
	}
	if got := out.NRGBAAt(30, 28); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("polygon interior should be untouched, got %v", got)
	}
}
